package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/hdev14/store/internal/domain"
)

const repositoryName = "PurchaseOrderRepository"

// PostgresRepository implements PurchaseOrderRepository on postgres. The
// schema carries the two guarantees the core cannot give itself: a partial
// unique index enforcing one DRAFT order per customer, and a sequence
// backing the human-facing order code.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(cred *Credentials) (*PostgresRepository, error) {
	psqlconn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cred.Host,
		cred.Port,
		cred.User,
		cred.Password,
		cred.DBName)

	db, err := sql.Open("postgres", psqlconn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if e2 := db.Ping(); e2 != nil {
		return nil, fmt.Errorf("failed to ping database: %w", e2)
	}

	db.SetMaxOpenConns(100)
	db.SetMaxIdleConns(10)
	return &PostgresRepository{db: db}, nil
}

func (r *PostgresRepository) RunMigrations(cred *Credentials) error {
	driver, err := postgres.WithInstance(r.db, &postgres.Config{
		MigrationsTable: "orders_schema_migrations",
	})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", cred.MigrationsDirPath),
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if e2 := m.Up(); e2 != nil && !errors.Is(e2, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", e2)
	}

	return nil
}

func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

const orderColumns = `o.id, o.customer_id, o.code, o.created_at, o.status, o.total_amount, o.discount_amount,
	v.id, v.code, v.type, v.percentage_amount, v.raw_discount_amount, v.quantity, v.active, v.created_at, v.expires_at, v.used_at`

func (r *PostgresRepository) GetPurchaseOrderByID(ctx context.Context, id uuid.UUID) (*domain.PurchaseOrder, error) {
	query := `SELECT ` + orderColumns + `
	          FROM purchase_orders o
	          LEFT JOIN vouchers v ON v.id = o.voucher_id
	          WHERE o.id = $1`

	po, err := r.scanPurchaseOrder(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}

	if e2 := r.loadItems(ctx, po); e2 != nil {
		return nil, e2
	}
	return po, nil
}

func (r *PostgresRepository) GetPurchaseOrdersByCustomerID(ctx context.Context, customerID uuid.UUID) ([]*domain.PurchaseOrder, error) {
	query := `SELECT ` + orderColumns + `
	          FROM purchase_orders o
	          LEFT JOIN vouchers v ON v.id = o.voucher_id
	          WHERE o.customer_id = $1
	          ORDER BY o.created_at`

	rows, err := r.db.QueryContext(ctx, query, customerID)
	if err != nil {
		return nil, wrap("query purchase orders", err)
	}
	defer rows.Close()

	var orders []*domain.PurchaseOrder
	for rows.Next() {
		po, e2 := r.scanPurchaseOrder(rows)
		if e2 != nil {
			return nil, e2
		}
		orders = append(orders, po)
	}
	if e2 := rows.Err(); e2 != nil {
		return nil, wrap("iterate purchase orders", e2)
	}

	for _, po := range orders {
		if e2 := r.loadItems(ctx, po); e2 != nil {
			return nil, e2
		}
	}
	return orders, nil
}

func (r *PostgresRepository) GetDraftPurchaseOrderByCustomerID(ctx context.Context, customerID uuid.UUID) (*domain.PurchaseOrder, error) {
	query := `SELECT ` + orderColumns + `
	          FROM purchase_orders o
	          LEFT JOIN vouchers v ON v.id = o.voucher_id
	          WHERE o.customer_id = $1 AND o.status = $2`

	po, err := r.scanPurchaseOrder(r.db.QueryRowContext(ctx, query, customerID, domain.PurchaseOrderStatusDraft))
	if err != nil {
		return nil, err
	}

	if e2 := r.loadItems(ctx, po); e2 != nil {
		return nil, e2
	}
	return po, nil
}

const itemColumns = `id, purchase_order_id, product_id, product_name, product_amount, quantity`

func (r *PostgresRepository) GetPurchaseOrderItemByID(ctx context.Context, id uuid.UUID) (*domain.PurchaseOrderItem, error) {
	query := `SELECT ` + itemColumns + ` FROM purchase_order_items WHERE id = $1`
	return scanItem(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) GetPurchaseOrderItem(ctx context.Context, purchaseOrderID, productID uuid.UUID) (*domain.PurchaseOrderItem, error) {
	query := `SELECT ` + itemColumns + ` FROM purchase_order_items WHERE purchase_order_id = $1 AND product_id = $2`
	return scanItem(r.db.QueryRowContext(ctx, query, purchaseOrderID, productID))
}

func (r *PostgresRepository) GetVoucherByCode(ctx context.Context, code int64) (*domain.Voucher, error) {
	query := `SELECT id, code, type, percentage_amount, raw_discount_amount, quantity, active, created_at, expires_at, used_at
	          FROM vouchers WHERE code = $1`

	var v domain.Voucher
	err := r.db.QueryRowContext(ctx, query, code).Scan(
		&v.ID, &v.Code, &v.Type, &v.PercentageAmount, &v.RawDiscountAmount,
		&v.Quantity, &v.Active, &v.CreatedAt, &v.ExpiresAt, &v.UsedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, wrap("get voucher by code", err)
	}
	return &v, nil
}

func (r *PostgresRepository) AddPurchaseOrder(ctx context.Context, po *domain.PurchaseOrder) error {
	query := `INSERT INTO purchase_orders (id, customer_id, code, created_at, status, voucher_id, total_amount, discount_amount)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		po.ID, po.CustomerID, po.Code, po.CreatedAt, po.Status,
		voucherID(po), po.TotalAmount, po.DiscountAmount)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" && pqErr.Constraint == "one_draft_per_customer" {
		return ErrDraftAlreadyExists
	}
	if err != nil {
		return wrap("insert purchase order", err)
	}
	return nil
}

func (r *PostgresRepository) UpdatePurchaseOrder(ctx context.Context, po *domain.PurchaseOrder) error {
	query := `UPDATE purchase_orders
	          SET status = $2, voucher_id = $3, total_amount = $4, discount_amount = $5
	          WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, po.ID, po.Status, voucherID(po), po.TotalAmount, po.DiscountAmount)
	if err != nil {
		return wrap("update purchase order", err)
	}
	return noneAffectedIsNotFound(res, "update purchase order")
}

func (r *PostgresRepository) AddPurchaseOrderItem(ctx context.Context, item *domain.PurchaseOrderItem) error {
	query := `INSERT INTO purchase_order_items (id, purchase_order_id, product_id, product_name, product_amount, quantity)
	          VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.ExecContext(ctx, query,
		item.ID, item.PurchaseOrderID, item.Product.ID, item.Product.Name, item.Product.Amount, item.Quantity)
	if err != nil {
		return wrap("insert purchase order item", err)
	}
	return nil
}

func (r *PostgresRepository) UpdatePurchaseOrderItem(ctx context.Context, item *domain.PurchaseOrderItem) error {
	query := `UPDATE purchase_order_items SET quantity = $2 WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, item.ID, item.Quantity)
	if err != nil {
		return wrap("update purchase order item", err)
	}
	return noneAffectedIsNotFound(res, "update purchase order item")
}

func (r *PostgresRepository) DeletePurchaseOrderItem(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM purchase_order_items WHERE id = $1`, id)
	if err != nil {
		return wrap("delete purchase order item", err)
	}
	return noneAffectedIsNotFound(res, "delete purchase order item")
}

func (r *PostgresRepository) CountPurchaseOrders(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM purchase_orders`)
}

func (r *PostgresRepository) CountPurchaseOrderItems(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM purchase_order_items`)
}

func (r *PostgresRepository) CountVouchers(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM vouchers`)
}

// NextPurchaseOrderCode draws from the storage-level sequence. Computing
// count+1 in the handler is not atomic under concurrent order creation; the
// sequence is.
func (r *PostgresRepository) NextPurchaseOrderCode(ctx context.Context) (int64, error) {
	var code int64
	err := r.db.QueryRowContext(ctx, `SELECT nextval('purchase_order_code_seq')`).Scan(&code)
	if err != nil {
		return 0, wrap("next purchase order code", err)
	}
	return code, nil
}

func (r *PostgresRepository) count(ctx context.Context, query string) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, wrap("count", err)
	}
	return n, nil
}

func (r *PostgresRepository) loadItems(ctx context.Context, po *domain.PurchaseOrder) error {
	query := `SELECT ` + itemColumns + ` FROM purchase_order_items WHERE purchase_order_id = $1 ORDER BY product_name`

	rows, err := r.db.QueryContext(ctx, query, po.ID)
	if err != nil {
		return wrap("query purchase order items", err)
	}
	defer rows.Close()

	for rows.Next() {
		item, e2 := scanItem(rows)
		if e2 != nil {
			return e2
		}
		po.Items = append(po.Items, *item)
	}
	if e2 := rows.Err(); e2 != nil {
		return wrap("iterate purchase order items", e2)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *PostgresRepository) scanPurchaseOrder(row rowScanner) (*domain.PurchaseOrder, error) {
	var po domain.PurchaseOrder
	var vID, vType sql.Null[string]
	var vCode, vQuantity sql.Null[int64]
	var vPct, vRaw sql.NullFloat64
	var vActive sql.NullBool
	var vCreated, vExpires, vUsed sql.NullTime

	err := row.Scan(
		&po.ID, &po.CustomerID, &po.Code, &po.CreatedAt, &po.Status, &po.TotalAmount, &po.DiscountAmount,
		&vID, &vCode, &vType, &vPct, &vRaw, &vQuantity, &vActive, &vCreated, &vExpires, &vUsed)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, wrap("scan purchase order", err)
	}

	if vID.Valid {
		voucher := domain.Voucher{
			ID:                uuid.MustParse(vID.V),
			Code:              vCode.V,
			Type:              domain.VoucherType(vType.V),
			PercentageAmount:  vPct.Float64,
			RawDiscountAmount: vRaw.Float64,
			Quantity:          int(vQuantity.V),
			Active:            vActive.Bool,
			CreatedAt:         vCreated.Time,
			ExpiresAt:         vExpires.Time,
		}
		if vUsed.Valid {
			voucher.UsedAt = &vUsed.Time
		}
		po.Voucher = &voucher
	}
	return &po, nil
}

func scanItem(row rowScanner) (*domain.PurchaseOrderItem, error) {
	var item domain.PurchaseOrderItem
	err := row.Scan(
		&item.ID, &item.PurchaseOrderID,
		&item.Product.ID, &item.Product.Name, &item.Product.Amount,
		&item.Quantity)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, wrap("scan purchase order item", err)
	}
	return &item, nil
}

func voucherID(po *domain.PurchaseOrder) any {
	if po.Voucher == nil {
		return nil
	}
	return po.Voucher.ID
}

func noneAffectedIsNotFound(res sql.Result, op string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return wrap(op, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func wrap(op string, err error) error {
	return &Error{Repository: repositoryName, Err: fmt.Errorf("%s: %w", op, err)}
}
