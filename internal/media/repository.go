package media

import (
	"database/sql"
	"time"
)

// Repository is the catalog store. Insert assigns ID and CreatedAt;
// rows are never updated afterwards.
type Repository interface {
	Insert(m *Media) error
	ListAll() ([]*Media, error)
	GetByID(id int64) (*Media, error)
}

type SQLRepository struct {
	db *sql.DB
}

func NewSQLRepository(db *sql.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) Insert(m *Media) error {
	now := time.Now().Unix()
	query := `INSERT INTO media (filename, originalname, mimetype, size, width, height, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id`

	if err := r.db.QueryRow(query,
		m.Filename,
		m.OriginalName,
		m.MimeType,
		m.Size,
		m.Width,
		m.Height,
		now,
	).Scan(&m.ID); err != nil {
		return err
	}

	m.CreatedAt = now
	return nil
}

// ListAll returns every row newest first. created_at has second
// resolution, so id breaks ties between same-second inserts.
func (r *SQLRepository) ListAll() ([]*Media, error) {
	query := `SELECT id, filename, originalname, mimetype, size, width, height, created_at
			  FROM media ORDER BY created_at DESC, id DESC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Media
	for rows.Next() {
		m, err := scanMedia(rows.Scan)
		if err != nil {
			return nil, err
		}
		items = append(items, m)
	}

	return items, rows.Err()
}

func (r *SQLRepository) GetByID(id int64) (*Media, error) {
	query := `SELECT id, filename, originalname, mimetype, size, width, height, created_at
			  FROM media WHERE id = $1`

	m, err := scanMedia(r.db.QueryRow(query, id).Scan)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return m, nil
}

func scanMedia(scan func(dest ...interface{}) error) (*Media, error) {
	m := &Media{}
	var width, height sql.NullInt64

	if err := scan(
		&m.ID,
		&m.Filename,
		&m.OriginalName,
		&m.MimeType,
		&m.Size,
		&width,
		&height,
		&m.CreatedAt,
	); err != nil {
		return nil, err
	}

	if width.Valid {
		w := int(width.Int64)
		m.Width = &w
	}
	if height.Valid {
		h := int(height.Int64)
		m.Height = &h
	}

	return m, nil
}
