package menu

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"grillbox/db"
	"grillbox/models"
	"grillbox/rdx"
	"grillbox/utils"

	"github.com/disintegration/imaging"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

const menuPicDir = "static/menupic"

func promo(p float64) *float64 { return &p }

// Seed inserts the starter catalog on an empty database so a fresh install
// has something to sell.
func Seed(ctx context.Context) {
	count, err := db.CategoriesCollection.CountDocuments(ctx, bson.M{})
	if err != nil || count > 0 {
		return
	}

	categories := []models.Category{
		{Name: "Burgers", Slug: "burgers", Image: "/static/menupic/hamburger-1.jpg"},
		{Name: "Fries", Slug: "fries", Image: "/static/menupic/fries1.jpg"},
		{Name: "Drinks", Slug: "drinks", Image: "/static/menupic/coca.jpg"},
		{Name: "Sides", Slug: "sides", Image: "/static/menupic/chicken-wings.jpg"},
		{Name: "Specials", Slug: "specials", Image: "/static/menupic/hamburger-2.jpg"},
	}
	items := []models.MenuItem{
		{ItemID: "burger-01", Name: "Classic Smash Burger", Price: 10.5, PromoPrice: promo(8.5), CategorySlug: "burgers", Badges: []string{"-20%"}, Available: true},
		{ItemID: "burger-02", Name: "Truffle Burger", Price: 13.9, CategorySlug: "burgers", Badges: []string{"New"}, Available: true},
		{ItemID: "fries-01", Name: "Rustic Fries", Price: 4.5, CategorySlug: "fries", Available: true},
		{ItemID: "fries-02", Name: "Loaded Fries", Price: 6.5, CategorySlug: "fries", Badges: []string{"Best seller"}, Available: true},
		{ItemID: "drink-01", Name: "Coca-Cola Classic", Price: 3.0, CategorySlug: "drinks", Available: true},
	}

	now := time.Now()
	catDocs := make([]interface{}, len(categories))
	for i, c := range categories {
		catDocs[i] = c
	}
	itemDocs := make([]interface{}, len(items))
	for i, it := range items {
		it.CreatedAt = now
		it.UpdatedAt = now
		itemDocs[i] = it
	}

	if _, err := db.CategoriesCollection.InsertMany(ctx, catDocs); err != nil {
		log.Printf("menu seed: categories insert failed: %v", err)
		return
	}
	if _, err := db.MenuCollection.InsertMany(ctx, itemDocs); err != nil {
		log.Printf("menu seed: items insert failed: %v", err)
	}
	log.Println("menu seed: starter catalog inserted")
}

// UploadMenuPhoto stores an item photo plus a storefront thumbnail.
func UploadMenuPhoto(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	file, _, err := r.FormFile("photo")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "photo file is required")
		return
	}
	defer file.Close()

	img, err := imaging.Decode(file)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "failed to decode image")
		return
	}

	if err := utils.EnsureDir(menuPicDir + "/thumb"); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to create upload directory")
		return
	}

	fileName := utils.GenerateRandomString(16) + ".jpg"
	if err := imaging.Save(img, fmt.Sprintf("%s/%s", menuPicDir, fileName)); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to save image")
		return
	}
	thumb := imaging.Resize(img, 300, 0, imaging.Lanczos)
	if err := imaging.Save(thumb, fmt.Sprintf("%s/thumb/%s", menuPicDir, fileName)); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to save thumbnail")
		return
	}

	rdx.RdxDel(menuCacheKey)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"ok":    true,
		"image": "/static/menupic/" + fileName,
		"thumb": "/static/menupic/thumb/" + fileName,
	})
}
