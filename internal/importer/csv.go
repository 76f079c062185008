// Package importer parses transaction exports for bulk imports.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hemanthscode/fintrack/internal/models"
	"github.com/hemanthscode/fintrack/internal/types"
	"github.com/shopspring/decimal"
)

// Columns of the transaction CSV format.
const (
	Date = iota
	Type
	Amount
	Category
	Description
	Tags
)

var header = []string{"date", "type", "amount", "category", "description", "tags"}

var ErrHeaderRow = errors.New("the first row must be the header: date,type,amount,category,description,tags")

// Parse reads a transaction CSV export and returns the transactions it
// contains. Tags are separated by semicolons inside their column. The category
// may be empty, the caller is expected to fill it in.
func Parse(f io.Reader, userID uuid.UUID) ([]models.Transaction, error) {
	reader := csv.NewReader(f)

	// We can reuse the array in the background to improve performance
	reader.ReuseRecord = true

	first, err := reader.Read()
	if err == io.EOF {
		return nil, ErrHeaderRow
	}
	if err != nil {
		return nil, fmt.Errorf("could not read line in CSV: %w", err)
	}

	if !isHeader(first) {
		return nil, ErrHeaderRow
	}

	var transactions []models.Transaction
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return csvReadError(reader, fmt.Errorf("could not read line in CSV: %w", err))
		}

		date, err := time.Parse("2006-01-02", record[Date])
		if err != nil {
			return csvReadError(reader, fmt.Errorf("could not parse date: %w", err))
		}

		transactionType := types.TransactionType(strings.ToLower(strings.TrimSpace(record[Type])))
		if !transactionType.Valid() {
			return csvReadError(reader, models.ErrTransactionTypeInvalid)
		}

		amount, err := decimal.NewFromString(record[Amount])
		if err != nil {
			return csvReadError(reader, errors.New("the amount could not be parsed to a decimal"))
		}

		var tags []string
		if record[Tags] != "" {
			tags = strings.Split(record[Tags], ";")
		}

		transactions = append(transactions, models.Transaction{
			UserID:      userID,
			Type:        transactionType,
			Amount:      amount,
			Category:    strings.TrimSpace(record[Category]),
			Date:        date,
			Description: strings.TrimSpace(record[Description]),
			Tags:        tags,
		})
	}

	return transactions, nil
}

func isHeader(record []string) bool {
	if len(record) != len(header) {
		return false
	}

	for i, name := range header {
		if !strings.EqualFold(strings.TrimSpace(record[i]), name) {
			return false
		}
	}

	return true
}

// csvReadError returns an error including the line of the input
// the error occurred in.
func csvReadError(r *csv.Reader, err error) ([]models.Transaction, error) {
	// always use the first field, we are only interested in the line
	line, _ := r.FieldPos(1)

	return nil, fmt.Errorf("error in line %d of the CSV: %w", line, err)
}
