package repository

import (
	"context"
	"fmt"
	"time"

	"pereval-backend/internal/models"

	"github.com/jackc/pgx/v5"
)

// querier is the subset of pgx used by the read helpers, so they work
// both on the pool and inside a transaction.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// DB is the database surface the repository needs.
// *pgxpool.Pool satisfies it.
type DB interface {
	querier
	Begin(ctx context.Context) (pgx.Tx, error)
}

// PassRepository handles database operations for mountain passes and
// their submitters, difficulty levels and images.
type PassRepository struct {
	db DB
}

// NewPassRepository creates a new pass repository
func NewPassRepository(db DB) *PassRepository {
	return &PassRepository{db: db}
}

// Create inserts a new pass with status "new" inside one transaction:
// the submitter is looked up by email or phone and created if absent,
// then the pass row, difficulty levels and images are inserted. Nothing
// is persisted if any step fails.
func (r *PassRepository) Create(ctx context.Context, input *models.PassInput) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	userID, err := getOrCreateUser(ctx, tx, input.User)
	if err != nil {
		return 0, err
	}

	query := `
		INSERT INTO mountain_passes
			(beauty_title, title, other_titles, connect, user_id,
			 latitude, longitude, height, add_time, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	var passID int64
	err = tx.QueryRow(ctx, query,
		input.BeautyTitle, input.Title, input.OtherTitles, input.Connect, userID,
		input.Coords.Latitude, input.Coords.Longitude, input.Coords.Height,
		time.Now(), models.StatusNew,
	).Scan(&passID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert pass: %w", err)
	}

	if input.Level != nil {
		if err := insertLevels(ctx, tx, passID, *input.Level); err != nil {
			return 0, err
		}
	}
	if len(input.Images) > 0 {
		if err := insertImages(ctx, tx, passID, input.Images); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return passID, nil
}

// GetByID retrieves the full denormalized record for a pass.
func (r *PassRepository) GetByID(ctx context.Context, id int64) (*models.Pass, error) {
	query := `
		SELECT mp.id, mp.beauty_title, mp.title, mp.other_titles, mp.connect,
		       mp.latitude, mp.longitude, mp.height, mp.add_time, mp.status,
		       u.email, u.phone, u.fam, u.name, u.otc
		FROM mountain_passes mp
		JOIN users u ON mp.user_id = u.id
		WHERE mp.id = $1
	`
	pass, err := scanPass(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get pass: %w", err)
	}

	if err := loadDetails(ctx, r.db, pass); err != nil {
		return nil, err
	}
	return pass, nil
}

// Update replaces the editable fields of a pass. The record must exist
// and still be in status "new", and any submitter block in the input
// must match the stored protected fields exactly. Difficulty levels and
// images, when supplied, are replaced wholesale rather than merged.
func (r *PassRepository) Update(ctx context.Context, id int64, input *models.PassInput) error {
	var (
		status models.Status
		userID int64
	)
	err := r.db.QueryRow(ctx,
		`SELECT status, user_id FROM mountain_passes WHERE id = $1`, id,
	).Scan(&status, &userID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return ErrNotFound
		}
		return fmt.Errorf("failed to check pass status: %w", err)
	}

	if status != models.StatusNew {
		return &EditNotAllowedError{Status: status}
	}

	if input.User != nil {
		var stored models.User
		err := r.db.QueryRow(ctx,
			`SELECT email, phone, fam, name, otc FROM users WHERE id = $1`, userID,
		).Scan(&stored.Email, &stored.Phone, &stored.Fam, &stored.Name, &stored.Otc)
		if err != nil {
			return fmt.Errorf("failed to get stored user: %w", err)
		}
		if changed := changedUserFields(stored, *input.User); len(changed) > 0 {
			return &ProtectedFieldsError{Fields: changed}
		}
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE mountain_passes
		SET beauty_title = $1,
		    title = $2,
		    other_titles = $3,
		    connect = $4,
		    latitude = $5,
		    longitude = $6,
		    height = $7
		WHERE id = $8
	`
	_, err = tx.Exec(ctx, query,
		input.BeautyTitle, input.Title, input.OtherTitles, input.Connect,
		input.Coords.Latitude, input.Coords.Longitude, input.Coords.Height, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update pass: %w", err)
	}

	if input.Level != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM difficulty_levels WHERE pass_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete difficulty levels: %w", err)
		}
		if err := insertLevels(ctx, tx, id, *input.Level); err != nil {
			return err
		}
	}
	if input.Images != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM images WHERE pass_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete images: %w", err)
		}
		if err := insertImages(ctx, tx, id, input.Images); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListByUserEmail retrieves all passes submitted under the given email,
// newest first. An empty slice means the email owns no passes.
func (r *PassRepository) ListByUserEmail(ctx context.Context, email string) ([]*models.Pass, error) {
	query := `
		SELECT mp.id, mp.beauty_title, mp.title, mp.other_titles, mp.connect,
		       mp.latitude, mp.longitude, mp.height, mp.add_time, mp.status,
		       u.email, u.phone, u.fam, u.name, u.otc
		FROM mountain_passes mp
		JOIN users u ON mp.user_id = u.id
		WHERE u.email = $1
		ORDER BY mp.add_time DESC
	`
	rows, err := r.db.Query(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("failed to list passes: %w", err)
	}
	defer rows.Close()

	passes := []*models.Pass{}
	for rows.Next() {
		pass, err := scanPass(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pass: %w", err)
		}
		passes = append(passes, pass)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating passes: %w", err)
	}

	for _, pass := range passes {
		if err := loadDetails(ctx, r.db, pass); err != nil {
			return nil, err
		}
	}
	return passes, nil
}

// getOrCreateUser resolves the submitter id, matching existing users by
// email or phone. Submitter rows are append-only.
func getOrCreateUser(ctx context.Context, tx pgx.Tx, user *models.User) (int64, error) {
	var id int64
	err := tx.QueryRow(ctx,
		`SELECT id FROM users WHERE email = $1 OR phone = $2 LIMIT 1`,
		user.Email, user.Phone,
	).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != pgx.ErrNoRows {
		return 0, fmt.Errorf("failed to look up user: %w", err)
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO users (email, phone, fam, name, otc) VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		user.Email, user.Phone, user.Fam, user.Name, user.Otc,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create user: %w", err)
	}
	return id, nil
}

func insertLevels(ctx context.Context, tx pgx.Tx, passID int64, level models.Level) error {
	query := `
		INSERT INTO difficulty_levels (pass_id, season, level)
		VALUES ($1, $2, $3)
		ON CONFLICT (pass_id, season) DO UPDATE SET level = EXCLUDED.level
	`
	grades := level.BySeason()
	for _, season := range models.Seasons {
		grade := grades[season]
		if grade == "" {
			continue
		}
		if _, err := tx.Exec(ctx, query, passID, season, grade); err != nil {
			return fmt.Errorf("failed to insert difficulty level: %w", err)
		}
	}
	return nil
}

func insertImages(ctx context.Context, tx pgx.Tx, passID int64, images []models.Image) error {
	query := `INSERT INTO images (pass_id, title, img_url) VALUES ($1, $2, $3)`
	for _, img := range images {
		if _, err := tx.Exec(ctx, query, passID, img.Title, img.URL); err != nil {
			return fmt.Errorf("failed to insert image: %w", err)
		}
	}
	return nil
}

// scanPass reads one joined pass+user row.
func scanPass(row pgx.Row) (*models.Pass, error) {
	var pass models.Pass
	err := row.Scan(
		&pass.ID, &pass.BeautyTitle, &pass.Title, &pass.OtherTitles, &pass.Connect,
		&pass.Coords.Latitude, &pass.Coords.Longitude, &pass.Coords.Height,
		&pass.AddTime, &pass.Status,
		&pass.User.Email, &pass.User.Phone, &pass.User.Fam, &pass.User.Name, &pass.User.Otc,
	)
	if err != nil {
		return nil, err
	}
	return &pass, nil
}

// loadDetails fills in the difficulty levels and images of a pass.
func loadDetails(ctx context.Context, q querier, pass *models.Pass) error {
	if err := loadLevels(ctx, q, pass); err != nil {
		return err
	}
	return loadImages(ctx, q, pass)
}

func loadLevels(ctx context.Context, q querier, pass *models.Pass) error {
	rows, err := q.Query(ctx,
		`SELECT season, level FROM difficulty_levels WHERE pass_id = $1`, pass.ID)
	if err != nil {
		return fmt.Errorf("failed to get difficulty levels: %w", err)
	}
	defer rows.Close()

	pass.Level = map[string]string{}
	for rows.Next() {
		var season, grade string
		if err := rows.Scan(&season, &grade); err != nil {
			return fmt.Errorf("failed to scan difficulty level: %w", err)
		}
		pass.Level[season] = grade
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating difficulty levels: %w", err)
	}
	return nil
}

func loadImages(ctx context.Context, q querier, pass *models.Pass) error {
	rows, err := q.Query(ctx,
		`SELECT title, img_url FROM images WHERE pass_id = $1 ORDER BY id`, pass.ID)
	if err != nil {
		return fmt.Errorf("failed to get images: %w", err)
	}
	defer rows.Close()

	pass.Images = []models.Image{}
	for rows.Next() {
		var img models.Image
		if err := rows.Scan(&img.Title, &img.URL); err != nil {
			return fmt.Errorf("failed to scan image: %w", err)
		}
		pass.Images = append(pass.Images, img)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating images: %w", err)
	}
	return nil
}

// changedUserFields compares the stored submitter against the incoming
// user block and returns the names of protected fields that differ.
func changedUserFields(stored, incoming models.User) []string {
	var changed []string
	for _, f := range []struct {
		name             string
		old, replacement string
	}{
		{"email", stored.Email, incoming.Email},
		{"phone", stored.Phone, incoming.Phone},
		{"fam", stored.Fam, incoming.Fam},
		{"name", stored.Name, incoming.Name},
		{"otc", stored.Otc, incoming.Otc},
	} {
		if f.old != f.replacement {
			changed = append(changed, f.name)
		}
	}
	return changed
}
