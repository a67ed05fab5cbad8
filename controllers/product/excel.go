package productcontroller

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kimseho1/shopmall-api/models"
	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

// GET /admin/products/export-excel
func ExportProductsToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if err := db.Order("id").Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Products")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		headers := []string{"ID", "Name", "Description", "Price", "Stock", "Category", "ImageURL", "CreatedAt"}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, p := range products {
			row := sheet.AddRow()
			row.AddCell().SetValue(p.ID)
			row.AddCell().SetValue(p.Name)
			row.AddCell().SetValue(p.Description)
			row.AddCell().SetValue(p.Price.String())
			row.AddCell().SetValue(p.StockQuantity)
			row.AddCell().SetValue(p.Category)
			row.AddCell().SetValue(p.ImageURL)
			row.AddCell().SetValue(p.CreatedAt.Format("2006-01-02 15:04:05"))
		}

		c.Header("Content-Disposition", "attachment; filename=products.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
			return
		}
	}
}

// POST /admin/products/import-excel
// Expects a sheet whose first row is a header and whose columns are
// Name, Description, Price, Stock, Category, ImageURL.
func ImportProductsFromExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Excel file is required"})
			return
		}

		src, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open uploaded file"})
			return
		}
		defer src.Close()

		data, err := io.ReadAll(src)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
			return
		}

		workbook, err := xlsx.OpenBinary(data)
		if err != nil || len(workbook.Sheets) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Excel file"})
			return
		}

		sheet := workbook.Sheets[0]
		var imported int
		var skipped []string

		for i, row := range sheet.Rows {
			if i == 0 || len(row.Cells) < 4 {
				continue
			}

			name := row.Cells[0].String()
			if name == "" {
				continue
			}

			price, err := decimal.NewFromString(row.Cells[2].String())
			if err != nil || !price.IsPositive() {
				skipped = append(skipped, fmt.Sprintf("row %d: invalid price", i+1))
				continue
			}
			stock, err := strconv.Atoi(row.Cells[3].String())
			if err != nil || stock < 0 {
				skipped = append(skipped, fmt.Sprintf("row %d: invalid stock", i+1))
				continue
			}

			product := models.Product{
				Name:          name,
				Description:   row.Cells[1].String(),
				Price:         price,
				StockQuantity: stock,
			}
			if len(row.Cells) > 4 {
				product.Category = row.Cells[4].String()
			}
			if len(row.Cells) > 5 {
				product.ImageURL = row.Cells[5].String()
			}

			if err := db.Create(&product).Error; err != nil {
				skipped = append(skipped, fmt.Sprintf("row %d: %v", i+1, err))
				continue
			}
			imported++
		}

		c.JSON(http.StatusOK, gin.H{"imported": imported, "skipped": skipped})
	}
}
