// Package products is the local SQLite cache of the product catalogue
// ("productos" table).
package products

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gamezone/internal/client/models"
	"github.com/dmitrijs2005/gamezone/internal/client/repositories/live"
	"github.com/dmitrijs2005/gamezone/internal/dbx"
)

const productColumns = `id, nombre, precio, descripcion, categoria`

type SQLiteRepository struct {
	db       dbx.DBTX
	notifier *live.Notifier
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db, notifier: live.NewNotifier()}
}

func (r *SQLiteRepository) Notifier() *live.Notifier {
	return r.notifier
}

// searchKey is what name searches match against. SQLite's lower() and LIKE
// only fold ASCII, so names are folded here instead.
func searchKey(s string) string {
	return strings.ToLower(s)
}

func upsert(ctx context.Context, db dbx.DBTX, p models.Product) error {
	_, err := db.ExecContext(ctx, `
		INSERT OR REPLACE INTO productos (`+productColumns+`, nombre_busqueda)
		VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Price, p.Description, p.Category, searchKey(p.Name))
	if err != nil {
		return fmt.Errorf("failed to upsert product %d: %w", p.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) Insert(ctx context.Context, p models.Product) error {
	if err := upsert(ctx, r.db, p); err != nil {
		return err
	}
	r.notifier.Notify()
	return nil
}

func (r *SQLiteRepository) InsertMany(ctx context.Context, list []models.Product) error {
	if len(list) == 0 {
		return nil
	}
	err := dbx.InTx(ctx, r.db, func(ctx context.Context, tx dbx.DBTX) error {
		for _, p := range list {
			if err := upsert(ctx, tx, p); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to insert products: %w", err)
	}
	r.notifier.Notify()
	return nil
}

func (r *SQLiteRepository) Update(ctx context.Context, p models.Product) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE productos SET nombre = ?, precio = ?, descripcion = ?, categoria = ?, nombre_busqueda = ?
		WHERE id = ?`,
		p.Name, p.Price, p.Description, p.Category, searchKey(p.Name), p.ID)
	if err != nil {
		return fmt.Errorf("failed to update product %d: %w", p.ID, err)
	}
	r.notifier.Notify()
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, p models.Product) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM productos WHERE id = ?`, p.ID); err != nil {
		return fmt.Errorf("failed to delete product %d: %w", p.ID, err)
	}
	r.notifier.Notify()
	return nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	var p models.Product
	err := r.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM productos WHERE id = ?`, id).
		Scan(&p.ID, &p.Name, &p.Price, &p.Description, &p.Category)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product %d: %w", id, err)
	}
	return &p, nil
}

func (r *SQLiteRepository) list(ctx context.Context, where string, args ...any) ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM productos`
	if where != "" {
		query += ` WHERE ` + where
	}
	query += ` ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select products: %w", err)
	}
	defer rows.Close()

	result := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Description, &p.Category); err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate product rows: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	return r.list(ctx, "")
}

func (r *SQLiteRepository) GetByCategory(ctx context.Context, category string) ([]models.Product, error) {
	return r.list(ctx, `categoria = ?`, category)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SearchByName matches term anywhere in the name, ignoring case (Unicode).
func (r *SQLiteRepository) SearchByName(ctx context.Context, term string) ([]models.Product, error) {
	return r.list(ctx, `nombre_busqueda LIKE '%' || ? || '%' ESCAPE '\'`, likeEscaper.Replace(searchKey(term)))
}

func (r *SQLiteRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM productos`); err != nil {
		return fmt.Errorf("failed to delete products: %w", err)
	}
	r.notifier.Notify()
	return nil
}

func (r *SQLiteRepository) ReplaceAll(ctx context.Context, list []models.Product) error {
	err := dbx.InTx(ctx, r.db, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM productos`); err != nil {
			return fmt.Errorf("failed to delete products: %w", err)
		}
		for _, p := range list {
			if err := upsert(ctx, tx, p); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to replace products: %w", err)
	}
	r.notifier.Notify()
	return nil
}
