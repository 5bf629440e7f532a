package adminapi

import (
	"errors"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/dromorongit/Richtymluxe/internal/domain"
	"github.com/dromorongit/Richtymluxe/internal/webserver"
	"github.com/dromorongit/Richtymluxe/pkg/common"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// registerProductRoutes registers public catalog reads and admin catalog CRUD
func registerProductRoutes() {
	webserver.PubGET("/products/boutique", listBoutiqueProducts)
	webserver.PubGET("/products/mobile", listMobileProducts)
	webserver.PubGET("/products/:id", getProduct)
	webserver.ApiGET("/products/admin/all", listProductsAdmin)
	webserver.ApiPOST("/products", createProduct)
	webserver.ApiPUT("/products/:id", updateProduct)
	webserver.ApiDELETE("/products/:id", deleteProduct)
}

// listPublicProducts returns active products of one type, newest first.
func listPublicProducts(c echo.Context, productType string) error {
	var rows []domain.Product
	err := GetDB(c).
		Where("product_type = ? AND is_active = ?", productType, true).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}
	return ok(c, rows)
}

func listBoutiqueProducts(c echo.Context) error {
	return listPublicProducts(c, domain.ProductTypeBoutique)
}

func listMobileProducts(c echo.Context) error {
	return listPublicProducts(c, domain.ProductTypeMobile)
}

// getProduct is public: an inactive product is indistinguishable from a
// missing one.
func getProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found", nil)
	}
	var p domain.Product
	if err := GetDB(c).Where("id = ?", id).First(&p).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query product", err.Error())
	}
	if !p.IsActive {
		return fail(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found", nil)
	}
	return ok(c, &p)
}

func listProductsAdmin(c echo.Context) error {
	page, pageSize := parsePagination(c)

	db := GetDB(c).Model(&domain.Product{})

	if productType := strings.TrimSpace(c.QueryParam("productType")); productType != "" {
		db = db.Where("product_type = ?", productType)
	}

	if search := strings.TrimSpace(c.QueryParam("search")); search != "" {
		if strings.EqualFold(db.Name(), "postgres") {
			db = db.Where("product_name ILIKE ? OR short_description ILIKE ?",
				"%"+search+"%", "%"+search+"%")
		} else {
			pattern := "%" + strings.ToLower(search) + "%"
			db = db.Where("LOWER(product_name) LIKE ? OR LOWER(short_description) LIKE ?",
				pattern, pattern)
		}
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}

	var rows []domain.Product
	if err := db.Order("created_at DESC").Offset((page - 1) * pageSize).Limit(pageSize).Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}

	return ok(c, map[string]interface{}{
		"products":      rows,
		"currentPage":   page,
		"totalPages":    int(math.Ceil(float64(total) / float64(pageSize))),
		"totalProducts": total,
	})
}

type productPayload struct {
	ProductName      *string  `json:"productName"`
	ShortDescription *string  `json:"shortDescription"`
	LongDescription  *string  `json:"longDescription"`
	OriginalPrice    *float64 `json:"originalPrice"`
	SalesPrice       *float64 `json:"salesPrice"`
	StockQuantity    *int     `json:"stockQuantity"`
	Category         *string  `json:"category"`
	CoverImage       *string  `json:"coverImage"`
	AdditionalImages []string `json:"additionalImages"`
	Colors           []string `json:"colors"`
	IsNew            *bool    `json:"isNew"`
	IsBestseller     *bool    `json:"isBestseller"`
	ProductType      *string  `json:"productType"`
	IsActive         *bool    `json:"isActive"`
}

// validateProductFields checks the bounds shared by create and update.
func validateProductFields(payload *productPayload) string {
	if payload.ProductName != nil && len(*payload.ProductName) > 100 {
		return "Product name cannot exceed 100 characters"
	}
	if payload.ShortDescription != nil && len(*payload.ShortDescription) > 200 {
		return "Short description cannot exceed 200 characters"
	}
	if payload.OriginalPrice != nil && *payload.OriginalPrice < 0 {
		return "Original price cannot be negative"
	}
	if payload.SalesPrice != nil && *payload.SalesPrice < 0 {
		return "Sales price cannot be negative"
	}
	if payload.StockQuantity != nil && *payload.StockQuantity < 0 {
		return "Stock quantity cannot be negative"
	}
	if payload.ProductType != nil {
		pt := strings.ToLower(strings.TrimSpace(*payload.ProductType))
		if pt != domain.ProductTypeBoutique && pt != domain.ProductTypeMobile {
			return "Product type must be 'boutique' or 'mobile'"
		}
	}
	return ""
}

func createProduct(c echo.Context) error {
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}

	if payload.ProductName == nil || strings.TrimSpace(*payload.ProductName) == "" {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Product name is required", nil)
	}
	if payload.ShortDescription == nil || strings.TrimSpace(*payload.ShortDescription) == "" {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Short description is required", nil)
	}
	if payload.ProductType == nil || strings.TrimSpace(*payload.ProductType) == "" {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Product type is required", nil)
	}
	if msg := validateProductFields(&payload); msg != "" {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", msg, nil)
	}

	name := strings.TrimSpace(*payload.ProductName)

	// Friendly duplicate check; the unique index is the real guard.
	var count int64
	GetDB(c).Model(&domain.Product{}).Where("product_name = ?", name).Count(&count)
	if count > 0 {
		return fail(c, http.StatusBadRequest, "DUPLICATE_NAME", "Product with this name already exists", nil)
	}

	now := time.Now()
	p := domain.Product{
		ID:               common.UUIDint64(),
		ProductName:      name,
		ShortDescription: strings.TrimSpace(*payload.ShortDescription),
		ProductType:      strings.ToLower(strings.TrimSpace(*payload.ProductType)),
		OriginalPrice:    payload.OriginalPrice,
		SalesPrice:       payload.SalesPrice,
		AdditionalImages: payload.AdditionalImages,
		Colors:           payload.Colors,
		IsActive:         true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if payload.LongDescription != nil {
		p.LongDescription = strings.TrimSpace(*payload.LongDescription)
	}
	if payload.StockQuantity != nil {
		p.StockQuantity = *payload.StockQuantity
	}
	if payload.Category != nil {
		p.Category = strings.TrimSpace(*payload.Category)
	}
	if payload.CoverImage != nil {
		p.CoverImage = strings.TrimSpace(*payload.CoverImage)
	}
	if payload.IsNew != nil {
		p.IsNew = *payload.IsNew
	}
	if payload.IsBestseller != nil {
		p.IsBestseller = *payload.IsBestseller
	}
	if payload.IsActive != nil {
		p.IsActive = *payload.IsActive
	}

	if err := GetDB(c).Create(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fail(c, http.StatusBadRequest, "DUPLICATE_NAME", "Product with this name already exists", nil)
		}
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create product", err.Error())
	}

	if admin, err := currentAdmin(c); err == nil {
		addOprLog(c, admin.Username, "create_product", "created product "+p.ProductName)
	}

	p.DiscountPercentage = p.Discount()
	return created(c, &p)
}

func updateProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found", nil)
	}
	var p domain.Product
	if err := GetDB(c).Where("id = ?", id).First(&p).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query product", err.Error())
	}

	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	if msg := validateProductFields(&payload); msg != "" {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", msg, nil)
	}

	// Only fields present in the payload overwrite; nil means leave unchanged.
	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if payload.ProductName != nil {
		name := strings.TrimSpace(*payload.ProductName)
		if name == "" {
			return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Product name is required", nil)
		}
		if name != p.ProductName {
			var count int64
			GetDB(c).Model(&domain.Product{}).
				Where("product_name = ? AND id != ?", name, id).Count(&count)
			if count > 0 {
				return fail(c, http.StatusBadRequest, "DUPLICATE_NAME", "Product with this name already exists", nil)
			}
		}
		updates["product_name"] = name
	}
	if payload.ShortDescription != nil {
		updates["short_description"] = strings.TrimSpace(*payload.ShortDescription)
	}
	if payload.LongDescription != nil {
		updates["long_description"] = strings.TrimSpace(*payload.LongDescription)
	}
	if payload.OriginalPrice != nil {
		updates["original_price"] = *payload.OriginalPrice
	}
	if payload.SalesPrice != nil {
		updates["sales_price"] = *payload.SalesPrice
	}
	if payload.StockQuantity != nil {
		updates["stock_quantity"] = *payload.StockQuantity
	}
	if payload.Category != nil {
		updates["category"] = strings.TrimSpace(*payload.Category)
	}
	if payload.CoverImage != nil {
		updates["cover_image"] = strings.TrimSpace(*payload.CoverImage)
	}
	if payload.AdditionalImages != nil {
		updates["additional_images"] = domain.StringList(payload.AdditionalImages)
	}
	if payload.Colors != nil {
		updates["colors"] = domain.StringList(payload.Colors)
	}
	if payload.IsNew != nil {
		updates["is_new"] = *payload.IsNew
	}
	if payload.IsBestseller != nil {
		updates["is_bestseller"] = *payload.IsBestseller
	}
	if payload.ProductType != nil {
		updates["product_type"] = strings.ToLower(strings.TrimSpace(*payload.ProductType))
	}
	if payload.IsActive != nil {
		updates["is_active"] = *payload.IsActive
	}

	if err := GetDB(c).Model(&domain.Product{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fail(c, http.StatusBadRequest, "DUPLICATE_NAME", "Product with this name already exists", nil)
		}
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update product", err.Error())
	}

	if err := GetDB(c).Where("id = ?", id).First(&p).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query product", err.Error())
	}

	if admin, err := currentAdmin(c); err == nil {
		addOprLog(c, admin.Username, "update_product", "updated product "+p.ProductName)
	}
	return ok(c, &p)
}

func deleteProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found", nil)
	}
	var p domain.Product
	if err := GetDB(c).Where("id = ?", id).First(&p).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query product", err.Error())
	}

	if err := GetDB(c).Delete(&domain.Product{}, id).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete product", err.Error())
	}

	if admin, err := currentAdmin(c); err == nil {
		addOprLog(c, admin.Username, "delete_product", "deleted product "+p.ProductName)
	}
	return ok(c, map[string]interface{}{"message": "Product removed successfully"})
}
