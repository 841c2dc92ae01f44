package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gamezone/internal/client/models"
	"github.com/dmitrijs2005/gamezone/internal/client/repositories/live"
	"github.com/dmitrijs2005/gamezone/internal/dbx"
)

const userColumns = `id, nombre, correo, clave, direccion, aceptaterminos, gustos, imagen`

// SQLiteRepository implements Repository over a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db       dbx.DBTX
	notifier *live.Notifier
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db, notifier: live.NewNotifier()}
}

func (r *SQLiteRepository) Notifier() *live.Notifier {
	return r.notifier
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(s scanner) (*models.User, error) {
	var (
		u      models.User
		gustos string
		imagen sql.NullString
		terms  bool
	)
	if err := s.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Address, &terms, &gustos, &imagen); err != nil {
		return nil, err
	}
	u.AcceptedTerms = terms

	tags, err := models.DecodeInterests(gustos)
	if err != nil {
		return nil, err
	}
	u.Interests = tags
	if imagen.Valid {
		img := imagen.String
		u.Image = &img
	}
	return &u, nil
}

func nullableID(id int64) sql.NullInt64 {
	return sql.NullInt64{Int64: id, Valid: id != 0}
}

func nullableImage(img *string) sql.NullString {
	if img == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *img, Valid: true}
}

func insert(ctx context.Context, db dbx.DBTX, u models.User) (int64, error) {
	res, err := db.ExecContext(ctx, `
		INSERT OR REPLACE INTO usuarios (`+userColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		nullableID(u.ID), u.Name, u.Email, u.PasswordHash, u.Address, u.AcceptedTerms,
		models.EncodeInterests(u.Interests), nullableImage(u.Image))
	if err != nil {
		return 0, fmt.Errorf("failed to insert user %q: %w", u.Email, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get inserted user id: %w", err)
	}
	return id, nil
}

func (r *SQLiteRepository) Insert(ctx context.Context, u models.User) (int64, error) {
	id, err := insert(ctx, r.db, u)
	if err != nil {
		return 0, err
	}
	r.notifier.Notify()
	return id, nil
}

func (r *SQLiteRepository) Update(ctx context.Context, u models.User) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE usuarios
		SET nombre = ?, correo = ?, clave = ?, direccion = ?, aceptaterminos = ?, gustos = ?, imagen = ?
		WHERE id = ?`,
		u.Name, u.Email, u.PasswordHash, u.Address, u.AcceptedTerms,
		models.EncodeInterests(u.Interests), nullableImage(u.Image), u.ID)
	if err != nil {
		return fmt.Errorf("failed to update user %d: %w", u.ID, err)
	}
	r.notifier.Notify()
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, u models.User) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM usuarios WHERE id = ?`, u.ID); err != nil {
		return fmt.Errorf("failed to delete user %d: %w", u.ID, err)
	}
	r.notifier.Notify()
	return nil
}

func (r *SQLiteRepository) getOne(ctx context.Context, where string, arg any) (*models.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM usuarios WHERE `+where, arg)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return u, err
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	u, err := r.getOne(ctx, `id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	return u, nil
}

func (r *SQLiteRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u, err := r.getOne(ctx, `correo = ?`, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email %q: %w", email, err)
	}
	return u, nil
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM usuarios ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to select users: %w", err)
	}
	defer rows.Close()

	result := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		result = append(result, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate user rows: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM usuarios`); err != nil {
		return fmt.Errorf("failed to delete users: %w", err)
	}
	r.notifier.Notify()
	return nil
}

func (r *SQLiteRepository) ReplaceAll(ctx context.Context, list []models.User) error {
	err := dbx.InTx(ctx, r.db, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM usuarios`); err != nil {
			return fmt.Errorf("failed to delete users: %w", err)
		}
		for _, u := range list {
			if _, err := insert(ctx, tx, u); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to replace users: %w", err)
	}
	r.notifier.Notify()
	return nil
}

func (r *SQLiteRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM usuarios WHERE correo = ?)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email %q: %w", email, err)
	}
	return exists, nil
}
