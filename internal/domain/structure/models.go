package structure

type Group struct {
	GroupID     int64   `json:"groupId"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Weight      float64 `json:"weight"`
}

type SubGroup struct {
	SubGroupID int64  `json:"subGroupId"`
	GroupID    int64  `json:"groupId"`
	Name       string `json:"name"`
}

type Item struct {
	ItemID      int64  `json:"itemId"`
	SubGroupID  *int64 `json:"subGroupId,omitempty"`
	GroupID     *int64 `json:"groupId,omitempty"`
	Description string `json:"description"`
	ItemType    string `json:"itemType,omitempty"`
	ItemTypeID  *int64 `json:"itemTypeId,omitempty"`
}

// SubGroupWeight is the catalog slice the score calculator consumes: each
// scored subgroup with its parent group's weight.
type SubGroupWeight struct {
	SubGroupID int64
	GroupID    int64
	Name       string
	Weight     float64
}
