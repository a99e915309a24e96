package structure

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) ListGroups(ctx context.Context) ([]Group, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT group_id, name, description, weight
    FROM groups
    ORDER BY group_id
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []Group
	for rows.Next() {
		var g Group
		if err := rows.Scan(&g.GroupID, &g.Name, &g.Description, &g.Weight); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

func (s *Store) GetGroup(ctx context.Context, groupID int64) (*Group, error) {
	var g Group
	err := s.DB.QueryRow(ctx, `
    SELECT group_id, name, description, weight
    FROM groups
    WHERE group_id = $1
  `, groupID).Scan(&g.GroupID, &g.Name, &g.Description, &g.Weight)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrGroupNotFound
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (s *Store) CreateGroup(ctx context.Context, g Group) (int64, error) {
	var id int64
	err := s.DB.QueryRow(ctx, `
    INSERT INTO groups (name, description, weight)
    VALUES ($1,$2,$3)
    RETURNING group_id
  `, g.Name, g.Description, g.Weight).Scan(&id)
	return id, err
}

func (s *Store) UpdateGroup(ctx context.Context, g Group) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE groups
    SET name = $1, description = $2, weight = $3
    WHERE group_id = $4
  `, g.Name, g.Description, g.Weight, g.GroupID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrGroupNotFound
	}
	return nil
}

// DeleteGroup refuses while subgroups still reference the group; the caller
// must remove them first. The error message carries the dependent count.
func (s *Store) DeleteGroup(ctx context.Context, groupID int64) error {
	var dependents int
	if err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1) FROM subgroups WHERE group_id = $1
  `, groupID).Scan(&dependents); err != nil {
		return err
	}
	if dependents > 0 {
		return fmt.Errorf("%w: %d subgroup(s) must be deleted first", ErrGroupHasSubGroups, dependents)
	}

	tag, err := s.DB.Exec(ctx, `DELETE FROM groups WHERE group_id = $1`, groupID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrGroupNotFound
	}
	return nil
}

func (s *Store) ListSubGroups(ctx context.Context) ([]SubGroup, error) {
	return s.querySubGroups(ctx, `
    SELECT subgroup_id, group_id, name
    FROM subgroups
    ORDER BY subgroup_id
  `)
}

func (s *Store) ListSubGroupsByGroup(ctx context.Context, groupID int64) ([]SubGroup, error) {
	return s.querySubGroups(ctx, `
    SELECT subgroup_id, group_id, name
    FROM subgroups
    WHERE group_id = $1
    ORDER BY subgroup_id
  `, groupID)
}

func (s *Store) querySubGroups(ctx context.Context, sql string, args ...any) ([]SubGroup, error) {
	rows, err := s.DB.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subgroups []SubGroup
	for rows.Next() {
		var sg SubGroup
		if err := rows.Scan(&sg.SubGroupID, &sg.GroupID, &sg.Name); err != nil {
			return nil, err
		}
		subgroups = append(subgroups, sg)
	}
	return subgroups, rows.Err()
}

func (s *Store) CreateSubGroup(ctx context.Context, sg SubGroup) (int64, error) {
	var id int64
	err := s.DB.QueryRow(ctx, `
    INSERT INTO subgroups (group_id, name)
    VALUES ($1,$2)
    RETURNING subgroup_id
  `, sg.GroupID, sg.Name).Scan(&id)
	return id, err
}

func (s *Store) UpdateSubGroup(ctx context.Context, sg SubGroup) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE subgroups
    SET group_id = $1, name = $2
    WHERE subgroup_id = $3
  `, sg.GroupID, sg.Name, sg.SubGroupID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSubGroupNotFound
	}
	return nil
}

// DeleteSubGroup removes the subgroup together with everything hanging off
// it: its items, the evaluations that scored it (with all their scores),
// and finally the subgroup row. One transaction; any failure rolls back
// every prior step.
func (s *Store) DeleteSubGroup(ctx context.Context, subGroupID int64) error {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var exists int
	if err := tx.QueryRow(ctx, `
    SELECT COUNT(1) FROM subgroups WHERE subgroup_id = $1
  `, subGroupID).Scan(&exists); err != nil {
		return err
	}
	if exists == 0 {
		return ErrSubGroupNotFound
	}

	if _, err := tx.Exec(ctx, `
    DELETE FROM items WHERE subgroup_id = $1
  `, subGroupID); err != nil {
		return err
	}

	// Evaluations that scored this subgroup lose all their scores, then the
	// evaluation rows themselves; a partially scored evaluation would be
	// meaningless.
	rows, err := tx.Query(ctx, `
    SELECT DISTINCT evaluation_id FROM subgroup_scores WHERE subgroup_id = $1
  `, subGroupID)
	if err != nil {
		return err
	}
	var evaluationIDs []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return err
		}
		evaluationIDs = append(evaluationIDs, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	if len(evaluationIDs) > 0 {
		if _, err := tx.Exec(ctx, `
      DELETE FROM subgroup_scores WHERE evaluation_id = ANY($1)
    `, evaluationIDs); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `
      DELETE FROM evaluations WHERE evaluation_id = ANY($1)
    `, evaluationIDs); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(ctx, `
    DELETE FROM subgroups WHERE subgroup_id = $1
  `, subGroupID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (s *Store) ListItemsBySubGroup(ctx context.Context, subGroupID int64) ([]Item, error) {
	return s.queryItems(ctx, `
    SELECT item_id, subgroup_id, group_id, description, COALESCE(item_type, ''), item_type_id
    FROM items
    WHERE subgroup_id = $1
    ORDER BY item_id
  `, subGroupID)
}

func (s *Store) ListItemsByGroup(ctx context.Context, groupID int64) ([]Item, error) {
	return s.queryItems(ctx, `
    SELECT item_id, subgroup_id, group_id, description, COALESCE(item_type, ''), item_type_id
    FROM items
    WHERE group_id = $1 AND subgroup_id IS NULL
    ORDER BY item_id
  `, groupID)
}

func (s *Store) queryItems(ctx context.Context, sql string, args ...any) ([]Item, error) {
	rows, err := s.DB.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ItemID, &it.SubGroupID, &it.GroupID, &it.Description, &it.ItemType, &it.ItemTypeID); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (s *Store) CreateItem(ctx context.Context, it Item) (int64, error) {
	var id int64
	err := s.DB.QueryRow(ctx, `
    INSERT INTO items (subgroup_id, group_id, description, item_type, item_type_id)
    VALUES ($1,$2,$3,NULLIF($4,''),$5)
    RETURNING item_id
  `, it.SubGroupID, it.GroupID, it.Description, it.ItemType, it.ItemTypeID).Scan(&id)
	return id, err
}

func (s *Store) UpdateItem(ctx context.Context, it Item) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE items
    SET subgroup_id = $1, group_id = $2, description = $3, item_type = NULLIF($4,''), item_type_id = $5
    WHERE item_id = $6
  `, it.SubGroupID, it.GroupID, it.Description, it.ItemType, it.ItemTypeID, it.ItemID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrItemNotFound
	}
	return nil
}

// DeleteItem is guarded by the legacy per-item score table. With cascade
// the dependent scores go first, in the same transaction as the item.
func (s *Store) DeleteItem(ctx context.Context, itemID int64, cascade bool) error {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var dependents int
	if err := tx.QueryRow(ctx, `
    SELECT COUNT(1) FROM evaluation_item_scores WHERE item_id = $1
  `, itemID).Scan(&dependents); err != nil {
		return err
	}
	if dependents > 0 && !cascade {
		return fmt.Errorf("%w: %d score(s) reference this item", ErrItemHasScores, dependents)
	}
	if dependents > 0 {
		if _, err := tx.Exec(ctx, `
      DELETE FROM evaluation_item_scores WHERE item_id = $1
    `, itemID); err != nil {
			return err
		}
	}

	tag, err := tx.Exec(ctx, `DELETE FROM items WHERE item_id = $1`, itemID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrItemNotFound
	}

	return tx.Commit(ctx)
}

// SubGroupWeights loads the subgroup to group-weight join the calculator
// consumes. Read inside the caller's transaction so the score reflects the
// catalog as of the evaluation being created.
func SubGroupWeights(ctx context.Context, tx pgx.Tx) ([]SubGroupWeight, error) {
	rows, err := tx.Query(ctx, `
    SELECT sg.subgroup_id, sg.group_id, sg.name, g.weight
    FROM subgroups sg
    INNER JOIN groups g ON sg.group_id = g.group_id
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var weights []SubGroupWeight
	for rows.Next() {
		var w SubGroupWeight
		if err := rows.Scan(&w.SubGroupID, &w.GroupID, &w.Name, &w.Weight); err != nil {
			return nil, err
		}
		weights = append(weights, w)
	}
	return weights, rows.Err()
}
