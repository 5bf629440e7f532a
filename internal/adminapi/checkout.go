package adminapi

import (
	"net/http"

	"github.com/dromorongit/Richtymluxe/internal/cart"
	"github.com/dromorongit/Richtymluxe/internal/webserver"
	"github.com/labstack/echo/v4"
)

func registerCheckoutRoutes() {
	webserver.PubPOST("/checkout/whatsapp", checkoutWhatsApp)
}

// checkoutWhatsApp turns a cart into a wa.me link the storefront opens in a
// new tab. The server never sends the message itself.
func checkoutWhatsApp(c echo.Context) error {
	var basket cart.Cart
	if err := c.Bind(&basket); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse cart", err.Error())
	}
	if basket.Empty() {
		return fail(c, http.StatusBadRequest, "EMPTY_CART", "Your cart is empty", nil)
	}
	for _, item := range basket.Items {
		if item.Name == "" || item.Qty <= 0 || item.Price < 0 {
			return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid cart item", nil)
		}
	}

	appCtx := GetAppContext(c)
	phone := appCtx.GetSettingsStringValue("storefront", "order_phone")
	if phone == "" {
		phone = appCtx.Config().Storefront.OrderPhone
	}
	currency := appCtx.GetSettingsStringValue("storefront", "currency")
	if currency == "" {
		currency = "GHS"
	}

	return ok(c, map[string]interface{}{
		"url":   basket.CheckoutURL(phone, currency),
		"total": basket.Total(),
	})
}
