package Controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/gin-gonic/gin"

	"github.com/zygisk-enc/caresync/Models"
)

// FetchBloodBanks filters banks by a search term and, when the caller
// supplies coordinates, ranks them ascending by great-circle distance.
// Banks without coordinates sort last with a null distance.
func FetchBloodBanks(c *gin.Context) {
	searchTerm := strings.ToLower(c.Query("search"))

	query := Models.DB.Model(&Models.BloodBank{})
	if searchTerm != "" {
		like := "%" + searchTerm + "%"
		query = query.Where(
			"LOWER(name) LIKE ? OR LOWER(city) LIKE ? OR LOWER(district) LIKE ? OR LOWER(state) LIKE ?",
			like, like, like, like)
	}

	var banks []Models.BloodBank
	if err := query.Find(&banks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	latStr, lngStr := c.Query("lat"), c.Query("lng")
	if latStr == "" || lngStr == "" {
		c.JSON(http.StatusOK, banks)
		return
	}

	lat, latErr := strconv.ParseFloat(latStr, 64)
	lng, lngErr := strconv.ParseFloat(lngStr, 64)
	if latErr != nil || lngErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid coordinates"})
		return
	}

	c.JSON(http.StatusOK, Models.RankByDistance(banks, lat, lng))
}

// ImportBloodBanks bulk-loads banks from an uploaded spreadsheet. Columns:
// name, state, district, city, address, pincode, contact, mobile, email,
// website, category, latitude, longitude. The first row is a header.
func ImportBloodBanks(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Spreadsheet file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer file.Close()

	workbook, err := excelize.OpenReader(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read spreadsheet"})
		return
	}

	rows := workbook.GetRows(workbook.GetSheetName(1))
	if len(rows) < 2 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Spreadsheet has no data rows"})
		return
	}

	cell := func(row []string, index int) string {
		if index < len(row) {
			return strings.TrimSpace(row[index])
		}
		return ""
	}

	imported := 0
	tx := Models.DB.Begin()
	for _, row := range rows[1:] {
		name := cell(row, 0)
		if name == "" {
			continue
		}
		bank := Models.BloodBank{
			Name:      name,
			State:     cell(row, 1),
			District:  cell(row, 2),
			City:      cell(row, 3),
			Address:   cell(row, 4),
			Pincode:   cell(row, 5),
			ContactNo: cell(row, 6),
			Mobile:    cell(row, 7),
			Email:     cell(row, 8),
			Website:   cell(row, 9),
			Category:  cell(row, 10),
		}
		if lat, err := strconv.ParseFloat(cell(row, 11), 64); err == nil {
			bank.Latitude = &lat
		}
		if lng, err := strconv.ParseFloat(cell(row, 12), 64); err == nil {
			bank.Longitude = &lng
		}
		if err := tx.Create(&bank).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		imported++
	}
	tx.Commit()

	c.JSON(http.StatusOK, gin.H{"message": "Import complete", "imported": imported})
}
