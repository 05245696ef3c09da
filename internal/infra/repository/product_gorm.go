package repository

import (
	"context"
	"errors"
	"strings"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

// 検索/カテゴリ/おすすめ/ソート付きで返す。
func (r *ProductGormRepository) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, error) {
	var products []model.Product

	tx := r.db.WithContext(ctx).Model(&model.Product{})

	// q は name/description/category を対象（大文字小文字は区別しない）
	if s := strings.TrimSpace(q.Q); s != "" {
		like := "%" + escapeLike(strings.ToLower(s)) + "%"
		tx = tx.Where(
			`LOWER(name) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\' OR LOWER(category) LIKE ? ESCAPE '\'`,
			like, like, like,
		)
	}

	if q.Category != "" {
		tx = tx.Where("category = ?", q.Category)
	}
	if q.Featured {
		tx = tx.Where("featured = ?", true)
	}

	//sort
	switch q.Sort {
	case "price_asc":
		tx = tx.Order("price asc").Order("id asc")
	case "price_desc":
		tx = tx.Order("price desc").Order("id asc")
	case "rating":
		tx = tx.Order("rating desc").Order("id asc")
	default:
		tx = tx.Order("name asc").Order("id asc")
	}

	if err := tx.Find(&products).Error; err != nil {
		return []model.Product{}, err
	}
	return products, nil
}

// IDで商品を取得
func (r *ProductGormRepository) FindByID(ctx context.Context, id string) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// カテゴリ一覧（重複なし、名前順）
func (r *ProductGormRepository) Categories(ctx context.Context) ([]string, error) {
	var cats []string
	err := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Distinct("category").
		Order("category asc").
		Pluck("category", &cats).Error
	if err != nil {
		return []string{}, err
	}
	return cats, nil
}

// 商品の登録（同じIDなら上書き）
func (r *ProductGormRepository) Upsert(ctx context.Context, p model.Product) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(&p).Error
}

// %と_は文字として扱う
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
