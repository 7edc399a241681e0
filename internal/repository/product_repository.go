package repository

import (
	"context"
	"fmt"
	"strings"

	"shopfront/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// productRepository implements ProductRepository using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

const productColumns = "id, sku, name, description, price, category, images, featured, created_at"

func scanProduct(row pgx.Row) (*model.Product, error) {
	var p model.Product
	err := row.Scan(&p.ID, &p.SKU, &p.Name, &p.Description, &p.Price, &p.Category, &p.Images, &p.Featured, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) GetAll(ctx context.Context, category string, featured *bool) ([]model.Product, error) {
	query := "SELECT " + productColumns + " FROM products"
	var conds []string
	var args []any

	if category != "" {
		args = append(args, category)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	if featured != nil {
		args = append(args, *featured)
		conds = append(conds, fmt.Sprintf("featured = $%d", len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products, err := collectProducts(rows)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to scan products")
		return nil, err
	}

	if err := r.attachSizes(ctx, products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	return r.getByID(ctx, r.pool, id)
}

func (r *productRepository) GetByIDTx(ctx context.Context, tx pgx.Tx, id string) (*model.Product, error) {
	return r.getByID(ctx, tx, id)
}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (r *productRepository) getByID(ctx context.Context, q querier, id string) (*model.Product, error) {
	query := "SELECT " + productColumns + " FROM products WHERE id = $1"

	p, err := scanProduct(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("product_id", id).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	sizes, err := r.loadSizes(ctx, q, id)
	if err != nil {
		return nil, err
	}
	p.SizesStock = sizes
	return p, nil
}

func (r *productRepository) GetByIDs(ctx context.Context, ids []string) ([]model.Product, error) {
	if len(ids) == 0 {
		return []model.Product{}, nil
	}

	query := "SELECT " + productColumns + " FROM products WHERE id = ANY($1) ORDER BY created_at DESC"

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		r.logger.Error().Err(err).Int("count", len(ids)).Msg("failed to query products by IDs")
		return nil, fmt.Errorf("failed to query products by IDs: %w", err)
	}
	defer rows.Close()

	products, err := collectProducts(rows)
	if err != nil {
		return nil, err
	}

	if err := r.attachSizes(ctx, products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) Search(ctx context.Context, req *model.SearchRequest) ([]model.Product, int, error) {
	var conds []string
	var args []any

	if req.Query != "" {
		args = append(args, "%"+req.Query+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			"(name->>'en' ILIKE $%d OR name->>'ar' ILIKE $%d OR name->>'tr' ILIKE $%d OR sku ILIKE $%d)",
			n, n, n, n))
	}
	if req.Category != "" {
		args = append(args, req.Category)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	if req.MinPrice != nil {
		args = append(args, *req.MinPrice)
		conds = append(conds, fmt.Sprintf("price >= $%d", len(args)))
	}
	if req.MaxPrice != nil {
		args = append(args, *req.MaxPrice)
		conds = append(conds, fmt.Sprintf("price <= $%d", len(args)))
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM products"+where, args...).Scan(&total); err != nil {
		r.logger.Error().Err(err).Msg("failed to count search results")
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	orderBy := map[string]string{
		"created_at": "created_at DESC",
		"price_asc":  "price ASC",
		"price_desc": "price DESC",
		"name":       "name->>'en' ASC",
	}[req.SortBy]
	if orderBy == "" {
		orderBy = "created_at DESC"
	}

	args = append(args, req.Limit)
	limitArg := len(args)
	args = append(args, (req.Page-1)*req.Limit)
	offsetArg := len(args)

	query := fmt.Sprintf("SELECT %s FROM products%s ORDER BY %s LIMIT $%d OFFSET $%d",
		productColumns, where, orderBy, limitArg, offsetArg)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to search products")
		return nil, 0, fmt.Errorf("failed to search products: %w", err)
	}
	defer rows.Close()

	products, err := collectProducts(rows)
	if err != nil {
		return nil, 0, err
	}

	if err := r.attachSizes(ctx, products); err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *productRepository) Create(ctx context.Context, p *model.Product) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO products (id, sku, name, description, price, category, images, featured, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err = tx.Exec(ctx, query, p.ID, p.SKU, p.Name, p.Description, p.Price, p.Category, p.Images, p.Featured, p.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", p.ID).Msg("failed to create product")
		return fmt.Errorf("failed to create product: %w", err)
	}

	if err := r.insertSizes(ctx, tx, p.ID, p.SizesStock); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit product: %w", err)
	}

	r.logger.Debug().Str("product_id", p.ID).Msg("product created")
	return nil
}

func (r *productRepository) Update(ctx context.Context, p *model.Product) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE products
		SET sku = $2, name = $3, description = $4, price = $5, category = $6, images = $7, featured = $8
		WHERE id = $1
	`
	tag, err := tx.Exec(ctx, query, p.ID, p.SKU, p.Name, p.Description, p.Price, p.Category, p.Images, p.Featured)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", p.ID).Msg("failed to update product")
		return fmt.Errorf("failed to update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}

	// Size rows are replaced wholesale on admin edit.
	if _, err := tx.Exec(ctx, "DELETE FROM product_sizes WHERE product_id = $1", p.ID); err != nil {
		return fmt.Errorf("failed to replace product sizes: %w", err)
	}
	if err := r.insertSizes(ctx, tx, p.ID, p.SizesStock); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to delete product")
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}
	return nil
}

// DecrementStock is the guard against oversell: the stock check and the
// subtraction happen in one conditional statement, so two concurrent
// orders can never both draw down the last units.
func (r *productRepository) DecrementStock(ctx context.Context, tx pgx.Tx, productID, size string, qty int) (bool, error) {
	query := `
		UPDATE product_sizes
		SET stock = stock - $3
		WHERE product_id = $1 AND size = $2 AND stock >= $3
	`

	tag, err := tx.Exec(ctx, query, productID, size, qty)
	if err != nil {
		r.logger.Error().Err(err).
			Str("product_id", productID).
			Str("size", size).
			Int("quantity", qty).
			Msg("failed to decrement stock")
		return false, fmt.Errorf("failed to decrement stock: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

func (r *productRepository) insertSizes(ctx context.Context, tx pgx.Tx, productID string, sizes []model.SizeStock) error {
	if len(sizes) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for i, s := range sizes {
		batch.Queue(
			"INSERT INTO product_sizes (product_id, size, stock, position) VALUES ($1, $2, $3, $4)",
			productID, s.Size, s.Stock, i)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for range sizes {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to insert product size: %w", err)
		}
	}
	return nil
}

func (r *productRepository) loadSizes(ctx context.Context, q querier, productID string) ([]model.SizeStock, error) {
	rows, err := q.Query(ctx,
		"SELECT size, stock FROM product_sizes WHERE product_id = $1 ORDER BY position", productID)
	if err != nil {
		return nil, fmt.Errorf("failed to query product sizes: %w", err)
	}
	defer rows.Close()

	var sizes []model.SizeStock
	for rows.Next() {
		var s model.SizeStock
		if err := rows.Scan(&s.Size, &s.Stock); err != nil {
			return nil, fmt.Errorf("failed to scan product size: %w", err)
		}
		sizes = append(sizes, s)
	}
	return sizes, rows.Err()
}

// attachSizes loads size rows for every product in the slice.
func (r *productRepository) attachSizes(ctx context.Context, products []model.Product) error {
	if len(products) == 0 {
		return nil
	}

	ids := make([]string, len(products))
	index := make(map[string]int, len(products))
	for i := range products {
		ids[i] = products[i].ID
		index[products[i].ID] = i
	}

	rows, err := r.pool.Query(ctx,
		"SELECT product_id, size, stock FROM product_sizes WHERE product_id = ANY($1) ORDER BY product_id, position", ids)
	if err != nil {
		return fmt.Errorf("failed to query product sizes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var productID string
		var s model.SizeStock
		if err := rows.Scan(&productID, &s.Size, &s.Stock); err != nil {
			return fmt.Errorf("failed to scan product size: %w", err)
		}
		if i, ok := index[productID]; ok {
			products[i].SizesStock = append(products[i].SizesStock, s)
		}
	}
	return rows.Err()
}

func collectProducts(rows pgx.Rows) ([]model.Product, error) {
	var products []model.Product
	for rows.Next() {
		var p model.Product
		err := rows.Scan(&p.ID, &p.SKU, &p.Name, &p.Description, &p.Price, &p.Category, &p.Images, &p.Featured, &p.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}
	return products, nil
}
