package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"shopper/internal/handlers"
	"shopper/internal/middleware"
	"shopper/internal/models"
	"shopper/internal/repositories"
	"shopper/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupApp wires a Fiber app against a named in-memory SQLite database with
// the full route surface, mirroring main. Each test gets its own database.
func setupApp(t *testing.T) (*fiber.App, *services.CatalogService, *services.AuthService) {
	t.Helper()

	viper.SetDefault("JWT_SECRET", "test_jwt_secret")
	viper.AutomaticEnv()
	jwtSecret := viper.GetString("JWT_SECRET")

	dbName := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", dbName)), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory database: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.User{}); err != nil {
		t.Fatalf("failed to auto-migrate database: %v", err)
	}

	productRepo := repositories.NewGORMProductRepository(db)
	userRepo := repositories.NewGORMUserRepository(db)

	catalogService := services.NewCatalogService(productRepo, nil) // nil: no broker in tests
	cartService := services.NewCartService(userRepo)
	authService := services.NewAuthService(userRepo, jwtSecret)

	productHandler := handlers.NewProductHandler(catalogService)
	cartHandler := handlers.NewCartHandler(cartService)
	authHandler := handlers.NewAuthHandler(authService)

	app := fiber.New()
	productHandler.RegisterRoutes(app)
	authHandler.RegisterRoutes(app)

	protected := app.Group("", middleware.AuthRequired(authService))
	cartHandler.RegisterRoutes(protected)

	return app, catalogService, authService
}

// TestMain suppresses logging during tests for cleaner output.
func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	code := m.Run()
	os.Exit(code)
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}, headers map[string]string) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(jsonBody)
	}
	req := httptest.NewRequest(http.MethodPost, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)

	var decoded map[string]interface{}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	resp.Body.Close()
	return resp, decoded
}

func getProducts(t *testing.T, app *fiber.App, path string) []models.Product {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var products []models.Product
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&products))
	resp.Body.Close()
	return products
}

func addProductBody(name, category string) map[string]interface{} {
	return map[string]interface{}{
		"name":      name,
		"image":     "http://localhost:4000/images/" + name + ".png",
		"category":  category,
		"new_price": 50.0,
		"old_price": 80.5,
	}
}

func TestProductLifecycle(t *testing.T) {
	app, _, _ := setupApp(t)

	// Three adds get ids 1, 2, 3.
	for i, name := range []string{"tshirt", "hoodie", "jacket"} {
		resp, body := postJSON(t, app, "/addproduct", addProductBody(name, "men"), nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, name, body["name"])

		products := getProducts(t, app, "/allproducts")
		assert.Len(t, products, i+1)
		assert.Equal(t, i+1, products[i].ID)
		assert.True(t, products[i].Available)
	}

	// Remove the middle product.
	resp, body := postJSON(t, app, "/removeproduct", map[string]interface{}{"id": 2}, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(2), body["id"])
	assert.Len(t, getProducts(t, app, "/allproducts"), 2)

	// Removing a non-existent id is a successful no-op.
	resp, body = postJSON(t, app, "/removeproduct", map[string]interface{}{"id": 99}, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.Len(t, getProducts(t, app, "/allproducts"), 2)

	// The next id is still max+1 of the remaining set.
	resp, _ = postJSON(t, app, "/addproduct", addProductBody("scarf", "women"), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	products := getProducts(t, app, "/allproducts")
	assert.Equal(t, 4, products[len(products)-1].ID)
}

func TestAddProductValidation(t *testing.T) {
	app, _, _ := setupApp(t)

	resp, body := postJSON(t, app, "/addproduct", map[string]interface{}{
		"name": "incomplete",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body, "errors")
	assert.Empty(t, getProducts(t, app, "/allproducts"))
}

func TestDerivedViews(t *testing.T) {
	app, catalogService, _ := setupApp(t)

	// 12 products, every third one in the women category.
	for i := 1; i <= 12; i++ {
		category := "kid"
		if i%3 == 0 {
			category = "women"
		}
		product := models.Product{
			Name:     fmt.Sprintf("product-%d", i),
			Image:    fmt.Sprintf("http://localhost:4000/images/p%d.png", i),
			Category: category,
			NewPrice: 20,
			OldPrice: 30,
		}
		assert.NoError(t, catalogService.AddProduct(&product))
	}

	latest := getProducts(t, app, "/newcollections")
	assert.Len(t, latest, 8)
	for _, p := range latest {
		assert.NotEqual(t, 1, p.ID)
	}
	assert.Equal(t, 5, latest[0].ID)
	assert.Equal(t, 12, latest[7].ID)

	women := getProducts(t, app, "/popularinwomen")
	assert.Len(t, women, 4)
	assert.Equal(t, []int{3, 6, 9, 12}, []int{women[0].ID, women[1].ID, women[2].ID, women[3].ID})
	for _, p := range women {
		assert.Equal(t, "women", p.Category)
	}
}

func TestSignupAndLogin(t *testing.T) {
	app, _, authService := setupApp(t)

	signupBody := map[string]string{
		"username": "testuser",
		"email":    "test@example.com",
		"password": "password123",
	}

	resp, body := postJSON(t, app, "/signup", signupBody, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	signupToken, _ := body["token"].(string)
	assert.NotEmpty(t, signupToken)

	// Duplicate email fails and issues no token.
	resp, body = postJSON(t, app, "/signup", signupBody, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "existing user found", body["errors"])
	assert.NotContains(t, body, "token")

	// Wrong password.
	resp, body = postJSON(t, app, "/login", map[string]string{
		"email":    "test@example.com",
		"password": "wrongpassword",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Invalid credentials", body["error"])

	// Unknown email looks identical to a wrong password.
	resp, body = postJSON(t, app, "/login", map[string]string{
		"email":    "nobody@example.com",
		"password": "password123",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid credentials", body["error"])

	// Correct credentials: both tokens resolve to the same user id.
	resp, body = postJSON(t, app, "/login", map[string]string{
		"email":    "test@example.com",
		"password": "password123",
	}, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	loginToken, _ := body["token"].(string)
	assert.NotEmpty(t, loginToken)

	signupID, err := authService.VerifyToken(signupToken)
	assert.NoError(t, err)
	loginID, err := authService.VerifyToken(loginToken)
	assert.NoError(t, err)
	assert.Equal(t, signupID, loginID)
}

func TestCartEndpoints(t *testing.T) {
	app, _, _ := setupApp(t)

	_, body := postJSON(t, app, "/signup", map[string]string{
		"username": "cartuser",
		"email":    "cart@example.com",
		"password": "password123",
	}, nil)
	token, _ := body["token"].(string)
	assert.NotEmpty(t, token)
	auth := map[string]string{"auth-token": token}

	// A fresh cart is a full map of zeroes.
	resp, cart := postJSON(t, app, "/getcart", nil, auth)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, cart, models.CartSlots)
	assert.Equal(t, float64(0), cart["5"])

	// Increment, read back, decrement back to the prior value.
	resp, body = postJSON(t, app, "/addtocart", map[string]interface{}{"itemId": 5}, auth)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Item added to cart", body["message"])

	_, cart = postJSON(t, app, "/getcart", nil, auth)
	assert.Equal(t, float64(1), cart["5"])

	resp, body = postJSON(t, app, "/removefromcart", map[string]interface{}{"itemId": 5}, auth)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Item removed from cart", body["message"])

	_, cart = postJSON(t, app, "/getcart", nil, auth)
	assert.Equal(t, float64(0), cart["5"])

	// No floor at zero.
	_, _ = postJSON(t, app, "/removefromcart", map[string]interface{}{"itemId": 5}, auth)
	_, cart = postJSON(t, app, "/getcart", nil, auth)
	assert.Equal(t, float64(-1), cart["5"])

	// Slots outside the fixed range are rejected.
	resp, body = postJSON(t, app, "/addtocart", map[string]interface{}{"itemId": 300}, auth)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, false, body["success"])
}

func TestUpload(t *testing.T) {
	app, _, _ := setupApp(t)
	uploadDir := t.TempDir()
	handlers.NewUploadHandler(uploadDir).RegisterRoutes(app)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("image", "sneaker.png")
	assert.NoError(t, err)
	_, err = part.Write([]byte("not really a png"))
	assert.NoError(t, err)
	assert.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	resp.Body.Close()
	assert.Equal(t, float64(1), body["success"])
	imageURL, _ := body["image_url"].(string)
	assert.Contains(t, imageURL, "/images/image_")
	assert.True(t, strings.HasSuffix(imageURL, ".png"))

	// The file landed in the upload directory under the generated name.
	entries, err := os.ReadDir(uploadDir)
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.True(t, strings.HasPrefix(entries[0].Name(), "image_"))

	// A request without the image field is rejected.
	req = httptest.NewRequest(http.MethodPost, "/upload", nil)
	resp, err = app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestProtectedEndpointsRequireToken(t *testing.T) {
	app, _, _ := setupApp(t)

	_, body := postJSON(t, app, "/signup", map[string]string{
		"username": "lockeduser",
		"email":    "locked@example.com",
		"password": "password123",
	}, nil)
	token, _ := body["token"].(string)
	assert.NotEmpty(t, token)

	for _, headers := range []map[string]string{
		nil, // missing token
		{"auth-token": "not.a.token"},   // malformed token
		{"auth-token": token + "xxxxx"}, // broken signature
	} {
		for _, path := range []string{"/addtocart", "/removefromcart", "/getcart"} {
			resp, body := postJSON(t, app, path, map[string]interface{}{"itemId": 1}, headers)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "%s with headers %v", path, headers)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, "Please authenticate using a valid token", body["errors"])
		}
	}

	// None of the rejected requests mutated the cart.
	_, cart := postJSON(t, app, "/getcart", nil, map[string]string{"auth-token": token})
	assert.Equal(t, float64(0), cart["1"])
}
