// Package repo 实现数据访问层，负责与数据库的交互。
// 仓储模式（Repository Pattern）将数据访问逻辑与业务逻辑分离，
// 商品目录对上层表现为一个只读的有序集合。
package repo

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/MorseWayne/boutique_shop/internal/domain"
)

// ProductRepository 定义商品数据访问接口。
// 目录在会话期间只读，因此只提供查询操作；写入通过迁移与导入完成。
type ProductRepository interface {
	// ListAll 返回完整的有序商品集合，顺序即目录展示顺序
	ListAll() ([]*domain.Product, error)

	// GetByID 按ID获取商品，未找到返回 (nil, nil)
	GetByID(id int64) (*domain.Product, error)

	// GetByIDs 按ID列表批量获取商品
	GetByIDs(ids []int64) ([]*domain.Product, error)

	// Count 返回商品总数
	Count() (int64, error)
}

// productRepo 实现ProductRepository接口
type productRepo struct {
	db *sql.DB
}

// NewProductRepository 创建商品仓储实例
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepo{db: db}
}

const productColumns = `
	id, name, description, long_description, price, old_price, discount,
	image_url, category, is_new, is_featured, in_stock, sizes, colors,
	rating, reviews, listed_at
`

// ListAll 返回完整的商品目录，按ID升序保证顺序稳定
func (r *productRepo) ListAll() ([]*domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products ORDER BY id`, productColumns)

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}

	return products, nil
}

// GetByID 根据ID获取商品
func (r *productRepo) GetByID(id int64) (*domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE id = ?`, productColumns)

	row := r.db.QueryRow(query, id)
	product, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product by id: %w", err)
	}

	return product, nil
}

// GetByIDs 根据ID列表批量获取商品
func (r *productRepo) GetByIDs(ids []int64) ([]*domain.Product, error) {
	if len(ids) == 0 {
		return []*domain.Product{}, nil
	}

	placeholders := ""
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		if i > 0 {
			placeholders += ","
		}
		placeholders += "?"
		args[i] = id
	}

	query := fmt.Sprintf(`SELECT %s FROM products WHERE id IN (%s) ORDER BY id`, productColumns, placeholders)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products by ids: %w", err)
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}

	return products, nil
}

// Count 获取商品总数
func (r *productRepo) Count() (int64, error) {
	var count int64
	if err := r.db.QueryRow("SELECT COUNT(*) FROM products").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

// rowScanner 统一 *sql.Row 与 *sql.Rows 的扫描入口
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanProduct 从一行记录构建商品。
// sizes/colors 以JSON数组存储，NULL 表示该商品没有对应的变体维度。
func scanProduct(row rowScanner) (*domain.Product, error) {
	product := &domain.Product{}
	var (
		oldPrice sql.NullFloat64
		sizes    sql.NullString
		colors   sql.NullString
	)

	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.LongDescription,
		&product.Price,
		&oldPrice,
		&product.Discount,
		&product.ImageURL,
		&product.Category,
		&product.IsNew,
		&product.IsFeatured,
		&product.InStock,
		&sizes,
		&colors,
		&product.Rating,
		&product.Reviews,
		&product.ListedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan product: %w", err)
	}

	if oldPrice.Valid {
		product.OldPrice = &oldPrice.Float64
	}
	if sizes.Valid && sizes.String != "" {
		if err := json.Unmarshal([]byte(sizes.String), &product.Sizes); err != nil {
			return nil, fmt.Errorf("failed to decode sizes for product %d: %w", product.ID, err)
		}
	}
	if colors.Valid && colors.String != "" {
		if err := json.Unmarshal([]byte(colors.String), &product.Colors); err != nil {
			return nil, fmt.Errorf("failed to decode colors for product %d: %w", product.ID, err)
		}
	}

	return product, nil
}
