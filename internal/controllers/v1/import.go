package v1

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hemanthscode/fintrack/internal/importer"
)

// getUploadedFile returns the form file and handles potential errors.
func getUploadedFile(c *gin.Context, field, suffix string) (multipart.File, error) {
	formFile, err := c.FormFile(field)
	if formFile == nil {
		return nil, errNoFilePost
	}

	if err != nil {
		return nil, err
	}

	if !strings.HasSuffix(formFile.Filename, suffix) {
		return nil, fmt.Errorf("%w: %s", errWrongFileSuffix, suffix)
	}

	f, err := formFile.Open()
	if err != nil {
		return nil, err
	}

	return f, nil
}

// @Summary		Import transactions
// @Description	Imports transactions from a CSV file with the columns date,type,amount,category,description,tags. Empty categories are filled in by match rules or the AI categorizer. The response code is the highest response code number that a single transaction creation would have caused.
// @Tags			Transactions
// @Accept			multipart/form-data
// @Produce		json
// @Success		201		{object}	TransactionCreateResponse
// @Failure		400		{object}	TransactionCreateResponse
// @Failure		500		{object}	TransactionCreateResponse
// @Param			file	formData	file	true	"CSV file"
// @Router			/v1/transactions/import [post]
func (co Controller) ImportTransactions(c *gin.Context) {
	f, err := getUploadedFile(c, "file", ".csv")
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, TransactionCreateResponse{Error: &e})
		return
	}
	defer f.Close()

	transactions, err := importer.Parse(f, currentUser(c).ID)
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, TransactionCreateResponse{Error: &e})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := TransactionCreateResponse{}

	for _, transaction := range transactions {
		model, err := co.createTransaction(c, transaction)
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newTransaction(c, model)
		r.Data = append(r.Data, TransactionResponse{Data: &data})
	}

	c.JSON(status, r)
}
