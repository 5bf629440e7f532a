package adminapi

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/dromorongit/Richtymluxe/internal/domain"
)

func TestPublicListsExcludeInactive(t *testing.T) {
	e, application := newTestServer(t)
	base := time.Now().Add(-time.Hour)

	seedProduct(t, application, domain.Product{
		ProductName: "Leather Bag", ShortDescription: "bag",
		ProductType: domain.ProductTypeBoutique, IsActive: true, CreatedAt: base,
	})
	seedProduct(t, application, domain.Product{
		ProductName: "Silk Scarf", ShortDescription: "scarf",
		ProductType: domain.ProductTypeBoutique, IsActive: false, CreatedAt: base.Add(time.Minute),
	})
	seedProduct(t, application, domain.Product{
		ProductName: "Budget Phone", ShortDescription: "phone",
		ProductType: domain.ProductTypeMobile, IsActive: true, CreatedAt: base.Add(2 * time.Minute),
	})
	seedProduct(t, application, domain.Product{
		ProductName: "Velvet Clutch", ShortDescription: "clutch",
		ProductType: domain.ProductTypeBoutique, IsActive: true, CreatedAt: base.Add(3 * time.Minute),
	})

	var rows []map[string]interface{}
	rec := doJSON(t, e, http.MethodGet, "/api/products/boutique", "", nil, &rows)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 boutique products, got %d", len(rows))
	}
	// newest first
	if rows[0]["productName"] != "Velvet Clutch" || rows[1]["productName"] != "Leather Bag" {
		t.Errorf("unexpected ordering: %v, %v", rows[0]["productName"], rows[1]["productName"])
	}
	for _, row := range rows {
		if row["productName"] == "Silk Scarf" {
			t.Error("inactive product leaked into public list")
		}
	}
}

func TestGetProductPublic(t *testing.T) {
	e, application := newTestServer(t)
	active := seedProduct(t, application, domain.Product{
		ProductName: "Leather Bag", ShortDescription: "bag",
		ProductType: domain.ProductTypeBoutique, IsActive: true,
	})
	inactive := seedProduct(t, application, domain.Product{
		ProductName: "Silk Scarf", ShortDescription: "scarf",
		ProductType: domain.ProductTypeBoutique, IsActive: false,
	})

	var row map[string]interface{}
	rec := doJSON(t, e, http.MethodGet, fmt.Sprintf("/api/products/%d", active.ID), "", nil, &row)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if row["productName"] != "Leather Bag" {
		t.Errorf("productName = %v", row["productName"])
	}

	// inactive indistinguishable from absent
	rec = doJSON(t, e, http.MethodGet, fmt.Sprintf("/api/products/%d", inactive.ID), "", nil, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("inactive product: status = %d", rec.Code)
	}
	rec = doJSON(t, e, http.MethodGet, "/api/products/999999", "", nil, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing product: status = %d", rec.Code)
	}
}

func TestDiscountComputedOnRead(t *testing.T) {
	e, application := newTestServer(t)
	original, sale := 100.0, 75.0
	p := seedProduct(t, application, domain.Product{
		ProductName: "Sale Bag", ShortDescription: "bag",
		ProductType: domain.ProductTypeBoutique, IsActive: true,
		OriginalPrice: &original, SalesPrice: &sale,
	})

	var row map[string]interface{}
	doJSON(t, e, http.MethodGet, fmt.Sprintf("/api/products/%d", p.ID), "", nil, &row)
	if row["discountPercentage"] != float64(25) {
		t.Errorf("discountPercentage = %v, want 25", row["discountPercentage"])
	}
}

func TestProductMutationsRequireToken(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(t, e, http.MethodPost, "/api/products", "",
		map[string]interface{}{"productName": "X"}, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("create without token: status = %d", rec.Code)
	}
	rec = doJSON(t, e, http.MethodGet, "/api/products/admin/all", "", nil, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("admin list without token: status = %d", rec.Code)
	}
}

func TestCreateProduct(t *testing.T) {
	e, application := newTestServer(t)
	seedAdmin(t, application, "boss", "secret-pass", domain.RoleSuperadmin, true)
	token := login(t, e, "boss", "secret-pass")

	payload := map[string]interface{}{
		"productName":      "Leather Bag",
		"shortDescription": "A fine bag",
		"productType":      "boutique",
		"originalPrice":    100,
		"salesPrice":       75,
		"colors":           []string{"black", "brown"},
	}

	var createdProduct map[string]interface{}
	rec := doJSON(t, e, http.MethodPost, "/api/products", token, payload, &createdProduct)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body.String())
	}
	if createdProduct["discountPercentage"] != float64(25) {
		t.Errorf("discountPercentage = %v", createdProduct["discountPercentage"])
	}
	if createdProduct["isActive"] != true {
		t.Errorf("isActive default = %v", createdProduct["isActive"])
	}

	// identical name rejected
	rec = doJSON(t, e, http.MethodPost, "/api/products", token, payload, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("duplicate create: status = %d", rec.Code)
	}

	// missing required fields rejected
	for _, missing := range []string{"productName", "shortDescription", "productType"} {
		bad := map[string]interface{}{
			"productName":      "Another Bag",
			"shortDescription": "desc",
			"productType":      "boutique",
		}
		delete(bad, missing)
		rec = doJSON(t, e, http.MethodPost, "/api/products", token, bad, nil)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("missing %s: status = %d", missing, rec.Code)
		}
	}

	// bad product type rejected
	rec = doJSON(t, e, http.MethodPost, "/api/products", token, map[string]interface{}{
		"productName": "Odd", "shortDescription": "d", "productType": "furniture",
	}, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad type: status = %d", rec.Code)
	}
}

func TestCreateProductInactive(t *testing.T) {
	e, application := newTestServer(t)
	seedAdmin(t, application, "boss", "secret-pass", domain.RoleSuperadmin, true)
	token := login(t, e, "boss", "secret-pass")

	var createdProduct map[string]interface{}
	rec := doJSON(t, e, http.MethodPost, "/api/products", token, map[string]interface{}{
		"productName":      "Hidden Bag",
		"shortDescription": "not for sale yet",
		"productType":      "boutique",
		"isActive":         false,
	}, &createdProduct)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body.String())
	}
	if createdProduct["isActive"] != false {
		t.Fatalf("isActive = %v, want false", createdProduct["isActive"])
	}

	// the stored row really is inactive, not flipped by a column default
	var stored domain.Product
	if err := application.DB().Where("product_name = ?", "Hidden Bag").First(&stored).Error; err != nil {
		t.Fatal(err)
	}
	if stored.IsActive {
		t.Error("product stored active despite explicit isActive=false")
	}

	id, _ := createdProduct["id"].(string)
	rec = doJSON(t, e, http.MethodGet, "/api/products/"+id, "", nil, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("public read of inactive product: status = %d", rec.Code)
	}
}

func TestUpdateProductPartial(t *testing.T) {
	e, application := newTestServer(t)
	seedAdmin(t, application, "boss", "secret-pass", domain.RoleSuperadmin, true)
	token := login(t, e, "boss", "secret-pass")

	p := seedProduct(t, application, domain.Product{
		ProductName: "Leather Bag", ShortDescription: "bag",
		ProductType: domain.ProductTypeBoutique, IsActive: true,
		StockQuantity: 7, IsBestseller: true,
	})

	// explicit zero overwrites
	var row map[string]interface{}
	rec := doJSON(t, e, http.MethodPut, fmt.Sprintf("/api/products/%d", p.ID), token,
		map[string]interface{}{"stockQuantity": 0}, &row)
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, body %s", rec.Code, rec.Body.String())
	}
	if row["stockQuantity"] != float64(0) {
		t.Errorf("stockQuantity = %v, want 0", row["stockQuantity"])
	}
	// omitted fields untouched
	if row["productName"] != "Leather Bag" || row["isBestseller"] != true {
		t.Errorf("omitted fields changed: %v", row)
	}

	// explicit false overwrites
	rec = doJSON(t, e, http.MethodPut, fmt.Sprintf("/api/products/%d", p.ID), token,
		map[string]interface{}{"isBestseller": false, "isActive": false}, &row)
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d", rec.Code)
	}
	if row["isBestseller"] != false || row["isActive"] != false {
		t.Errorf("explicit false ignored: %v", row)
	}

	// unknown id
	rec = doJSON(t, e, http.MethodPut, "/api/products/999999", token,
		map[string]interface{}{"stockQuantity": 1}, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown id: status = %d", rec.Code)
	}
}

func TestRenameConflict(t *testing.T) {
	e, application := newTestServer(t)
	seedAdmin(t, application, "boss", "secret-pass", domain.RoleSuperadmin, true)
	token := login(t, e, "boss", "secret-pass")

	a := seedProduct(t, application, domain.Product{
		ProductName: "Bag A", ShortDescription: "a",
		ProductType: domain.ProductTypeBoutique, IsActive: true,
	})
	seedProduct(t, application, domain.Product{
		ProductName: "Bag B", ShortDescription: "b",
		ProductType: domain.ProductTypeBoutique, IsActive: true,
	})

	rec := doJSON(t, e, http.MethodPut, fmt.Sprintf("/api/products/%d", a.ID), token,
		map[string]interface{}{"productName": "Bag B"}, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("rename conflict: status = %d, body %s", rec.Code, rec.Body.String())
	}

	// both records unchanged
	var check domain.Product
	if err := application.DB().Where("id = ?", a.ID).First(&check).Error; err != nil {
		t.Fatal(err)
	}
	if check.ProductName != "Bag A" {
		t.Errorf("product A renamed to %q despite conflict", check.ProductName)
	}

	// renaming to own name is a no-op, not a conflict
	rec = doJSON(t, e, http.MethodPut, fmt.Sprintf("/api/products/%d", a.ID), token,
		map[string]interface{}{"productName": "Bag A"}, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("self rename: status = %d", rec.Code)
	}
}

func TestAdminListPaginationAndSearch(t *testing.T) {
	e, application := newTestServer(t)
	seedAdmin(t, application, "boss", "secret-pass", domain.RoleSuperadmin, true)
	token := login(t, e, "boss", "secret-pass")

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 25; i++ {
		active := i%5 != 0
		seedProduct(t, application, domain.Product{
			ProductName:      fmt.Sprintf("Item %02d", i),
			ShortDescription: fmt.Sprintf("number %02d", i),
			ProductType:      domain.ProductTypeBoutique,
			IsActive:         active,
			CreatedAt:        base.Add(time.Duration(i) * time.Second),
		})
	}

	var resp struct {
		Products      []map[string]interface{} `json:"products"`
		CurrentPage   int                      `json:"currentPage"`
		TotalPages    int                      `json:"totalPages"`
		TotalProducts int                      `json:"totalProducts"`
	}

	rec := doJSON(t, e, http.MethodGet, "/api/products/admin/all?page=1&limit=10", token, nil, &resp)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if len(resp.Products) != 10 || resp.TotalPages != 3 || resp.TotalProducts != 25 {
		t.Errorf("page 1: items=%d totalPages=%d total=%d", len(resp.Products), resp.TotalPages, resp.TotalProducts)
	}
	// admin list includes inactive rows, newest first
	if resp.Products[0]["productName"] != "Item 24" {
		t.Errorf("page 1 first item = %v", resp.Products[0]["productName"])
	}

	rec = doJSON(t, e, http.MethodGet, "/api/products/admin/all?page=3&limit=10", token, nil, &resp)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if len(resp.Products) != 5 || resp.CurrentPage != 3 {
		t.Errorf("page 3: items=%d currentPage=%d", len(resp.Products), resp.CurrentPage)
	}

	// case-insensitive search across name and short description
	rec = doJSON(t, e, http.MethodGet, "/api/products/admin/all?search=ITEM+07", token, nil, &resp)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if resp.TotalProducts != 1 || resp.Products[0]["productName"] != "Item 07" {
		t.Errorf("search by name: %v", resp.Products)
	}

	rec = doJSON(t, e, http.MethodGet, "/api/products/admin/all?search=number+13", token, nil, &resp)
	if resp.TotalProducts != 1 {
		t.Errorf("search by description: total=%d", resp.TotalProducts)
	}
}

func TestDeleteProduct(t *testing.T) {
	e, application := newTestServer(t)
	seedAdmin(t, application, "boss", "secret-pass", domain.RoleSuperadmin, true)
	token := login(t, e, "boss", "secret-pass")

	p := seedProduct(t, application, domain.Product{
		ProductName: "Leather Bag", ShortDescription: "bag",
		ProductType: domain.ProductTypeBoutique, IsActive: true,
	})

	var resp map[string]interface{}
	rec := doJSON(t, e, http.MethodDelete, fmt.Sprintf("/api/products/%d", p.ID), token, nil, &resp)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rec.Code)
	}
	if resp["message"] != "Product removed successfully" {
		t.Errorf("delete message = %v", resp["message"])
	}

	// second delete and unknown id both 404
	rec = doJSON(t, e, http.MethodDelete, fmt.Sprintf("/api/products/%d", p.ID), token, nil, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete: status = %d", rec.Code)
	}
	rec = doJSON(t, e, http.MethodDelete, "/api/products/999999", token, nil, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown delete: status = %d", rec.Code)
	}
}
