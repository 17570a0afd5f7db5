package menu

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"grillbox/db"
	"grillbox/models"
	"grillbox/rdx"
	"grillbox/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const menuCacheKey = "menu:all"

func loadMenu(ctx context.Context) (models.MenuResponse, error) {
	categories, err := utils.FindAndDecode[models.Category](ctx, db.CategoriesCollection, bson.M{})
	if err != nil {
		return models.MenuResponse{}, err
	}
	items, err := utils.FindAndDecode[models.MenuItem](ctx, db.MenuCollection, bson.M{})
	if err != nil {
		return models.MenuResponse{}, err
	}
	if categories == nil {
		categories = []models.Category{}
	}
	if items == nil {
		items = []models.MenuItem{}
	}
	return models.MenuResponse{Categories: categories, Items: items}, nil
}

func respondWithMenu(w http.ResponseWriter, ctx context.Context) {
	menu, err := loadMenu(ctx)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch menu")
		return
	}

	if menuJSON, err := json.Marshal(menu); err == nil {
		rdx.RdxSet(menuCacheKey, string(menuJSON))
	}
	utils.RespondWithJSON(w, http.StatusOK, menu)
}

// GetMenu serves the public storefront menu, Redis-cached.
func GetMenu(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	cached, err := rdx.RdxGet(menuCacheKey)
	if err == nil && cached != "" {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(cached))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	respondWithMenu(w, ctx)
}

// UpsertMenuItem creates or replaces an item. Reservations are unaffected:
// they carry their own price/name snapshots.
func UpsertMenuItem(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body struct {
		models.MenuItem
		Available *bool `json:"available"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}

	item := body.MenuItem
	if strings.TrimSpace(item.Name) == "" || len(item.Name) > 100 {
		utils.RespondWithError(w, http.StatusBadRequest, "Name must be between 1 and 100 characters.")
		return
	}
	if item.CategorySlug == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Category is required.")
		return
	}
	if item.Price < 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid price value. Must be a non-negative number.")
		return
	}
	if item.PromoPrice != nil && *item.PromoPrice < 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid promo price value.")
		return
	}

	if item.ItemID == "" {
		item.ItemID = utils.GenerateRandomString(14)
		item.CreatedAt = time.Now()
	}
	item.Available = body.Available == nil || *body.Available
	item.UpdatedAt = time.Now()

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	_, err := db.MenuCollection.UpdateOne(ctx,
		bson.M{"itemid": item.ItemID},
		bson.M{"$set": item},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save menu item")
		return
	}

	rdx.RdxDel(menuCacheKey)
	respondWithMenu(w, ctx)
}

// DeleteMenuItem removes an item from the catalog.
func DeleteMenuItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	itemID := ps.ByName("itemid")
	if itemID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "missing id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.MenuCollection.DeleteOne(ctx, bson.M{"itemid": itemID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete menu item")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Menu item not found")
		return
	}

	rdx.RdxDel(menuCacheKey)
	respondWithMenu(w, ctx)
}
