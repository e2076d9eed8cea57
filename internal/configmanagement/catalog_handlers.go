package configmanagement

import (
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"crop-asr-qa/backend/internal/coreengine/sessionengine"
	"crop-asr-qa/backend/internal/datastore"
	"crop-asr-qa/backend/internal/itemcatalog"

	"github.com/gin-gonic/gin"
)

// UploadCatalogHandler ingests a CSV or Excel file of crop labels into a new
// item catalog. Multipart form fields: "file" (required), "name" (defaults to
// the filename), "language" (default language for rows without one).
func UploadCatalogHandler(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A catalog file is required: " + err.Error()})
		return
	}

	language := c.DefaultPostForm("language", "en")
	language, err = itemcatalog.NormalizeLanguage(language)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to open uploaded file: " + err.Error()})
		return
	}
	defer f.Close()

	ext := strings.ToLower(filepath.Ext(file.Filename))
	var items []sessionengine.TestItem
	switch ext {
	case ".xlsx", ".xls":
		items, err = itemcatalog.ParseExcel(f, language)
	case ".csv", ".txt", "":
		items, err = itemcatalog.ParseCSV(f, language)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported file type " + ext + "; upload a .csv or .xlsx file"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse catalog file: " + err.Error()})
		return
	}
	if len(items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Catalog file contains no items"})
		return
	}

	name := c.PostForm("name")
	if name == "" {
		name = strings.TrimSuffix(file.Filename, filepath.Ext(file.Filename))
	}

	catalog := &datastore.ItemCatalog{Name: name, Language: language}
	rows := make([]datastore.CatalogItem, len(items))
	for i, it := range items {
		rows[i] = datastore.CatalogItem{
			SerialNumber: it.SerialNumber,
			Code:         it.Code,
			Label:        it.Label,
			Language:     it.Language,
		}
	}

	id, err := datastore.CreateItemCatalog(catalog, rows)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store catalog: " + err.Error()})
		return
	}

	catalog.ID = id
	catalog.ItemCount = len(rows)
	c.JSON(http.StatusCreated, catalog)
}

// GetCatalogHandler returns a catalog together with its items.
func GetCatalogHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid catalog ID format"})
		return
	}

	catalog, err := datastore.GetItemCatalog(id)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve catalog: " + err.Error()})
		}
		return
	}

	items, err := datastore.GetCatalogItems(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve catalog items: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"catalog": catalog, "items": items})
}

// ListCatalogsHandler lists all item catalogs.
func ListCatalogsHandler(c *gin.Context) {
	catalogs, err := datastore.ListItemCatalogs()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list catalogs: " + err.Error()})
		return
	}

	if catalogs == nil {
		catalogs = []*datastore.ItemCatalog{}
	}
	c.JSON(http.StatusOK, catalogs)
}

// ListLanguagesHandler returns the supported test languages.
func ListLanguagesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, itemcatalog.SupportedLanguages())
}
