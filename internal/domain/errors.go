// Package domain 定义领域层错误。
package domain

import "errors"

// 商品目录相关错误
var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInvalidCategory   = errors.New("invalid category")
	ErrInvalidPriceRange = errors.New("invalid price range")
	ErrInvalidSortKey    = errors.New("invalid sort key")
)

// 购物车与选择状态相关错误
var (
	ErrSizeRequired     = errors.New("please select a size")
	ErrColorRequired    = errors.New("please select a color")
	ErrInvalidQuantity  = errors.New("quantity must be at least 1")
	ErrInvalidProductID = errors.New("invalid product id")
)
