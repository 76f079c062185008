package v1

import (
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hemanthscode/fintrack/internal/ai"
	"github.com/hemanthscode/fintrack/internal/httputil"
	"github.com/hemanthscode/fintrack/internal/models"
	"github.com/hemanthscode/fintrack/internal/types"
	"github.com/hemanthscode/fintrack/internal/uuid"
	"github.com/shopspring/decimal"
)

// ReceiptDir is where uploaded receipt images are stored.
var ReceiptDir = filepath.Join("data", "receipts")

// RegisterAssistantRoutes registers the routes for the AI assistant with
// the RouterGroup that is passed.
func (co Controller) RegisterAssistantRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/chat", httputil.OptionsPost)
	r.POST("/chat", co.Chat)

	r.OPTIONS("/receipts", httputil.OptionsPost)
	r.POST("/receipts", co.ParseReceipt)
}

type ChatRequest struct {
	Messages []ai.Message `json:"messages" binding:"required"` // The conversation so far, oldest message first
}

type ChatResponse struct {
	Error *string `json:"error" example:"the chat request must contain at least one message"` // The error, if any occurred
	Data  *string `json:"data"`                                                               // The assistant's reply
}

// ReceiptDraft is a transaction prefilled from a parsed receipt. It is not
// persisted, the client submits it to POST /v1/transactions after review.
type ReceiptDraft struct {
	Draft      TransactionEditable `json:"draft"`                                            // The prefilled transaction
	Merchant   string              `json:"merchant" example:"EDEKA"`                         // The merchant as printed on the receipt
	ReceiptURL string              `json:"receiptUrl" example:"/data/receipts/d3cc2e6f.jpg"` // Where the uploaded image is stored
}

type ReceiptResponse struct {
	Error *string       `json:"error" example:"this endpoint only supports image files"` // The error, if any occurred
	Data  *ReceiptDraft `json:"data"`                                                    // The draft, if parsing was successful
}

// @Summary		Chat
// @Description	Answers questions about the user's finances. The current month's aggregates and the state of all current budgets are made available to the assistant.
// @Tags			Assistant
// @Accept			json
// @Produce		json
// @Success		200			{object}	ChatResponse
// @Failure		400			{object}	ChatResponse
// @Failure		500			{object}	ChatResponse
// @Failure		503			{object}	ChatResponse
// @Param			messages	body		ChatRequest	true	"Conversation"
// @Router			/v1/chat [post]
func (co Controller) Chat(c *gin.Context) {
	if !co.AI.Enabled() {
		e := errChatDisabled.Error()
		c.JSON(http.StatusServiceUnavailable, ChatResponse{Error: &e})
		return
	}

	var request ChatRequest
	err := httputil.BindData(c, &request)
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, ChatResponse{Error: &e})
		return
	}

	if len(request.Messages) == 0 {
		e := errNoMessages.Error()
		c.JSON(http.StatusBadRequest, ChatResponse{Error: &e})
		return
	}

	dataContext, err := co.chatContext(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ChatResponse{Error: &e})
		return
	}

	reply, err := co.AI.Chat(c.Request.Context(), request.Messages, dataContext)
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusInternalServerError, ChatResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, ChatResponse{Data: &reply})
}

// chatContext assembles the finance data the assistant may use for answers.
func (co Controller) chatContext(c *gin.Context) (string, error) {
	analytics, err := co.monthlyAnalytics(c)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(analyticsSummary(analytics))

	var budgets []models.Budget
	err = models.DB.
		Where("user_id = ? AND end_date >= ?", currentUser(c).ID, time.Now()).
		Order("name ASC").
		Find(&budgets).Error
	if err != nil {
		return "", err
	}

	if len(budgets) > 0 {
		b.WriteString("Current budgets and savings goals:\n")
		for _, budget := range budgets {
			fmt.Fprintf(&b, "- %s (%s): %s of %s used, status %s\n",
				budget.Name, budget.Type, budget.Progress, budget.Amount, budget.Status(time.Now()))
		}
	}

	return b.String(), nil
}

// @Summary		Parse receipt
// @Description	Stores an uploaded receipt image and extracts a draft transaction from it. The draft is not persisted, submit it to POST /v1/transactions after review.
// @Tags			Assistant
// @Accept			multipart/form-data
// @Produce		json
// @Success		200		{object}	ReceiptResponse
// @Failure		400		{object}	ReceiptResponse
// @Failure		500		{object}	ReceiptResponse
// @Failure		503		{object}	ReceiptResponse
// @Param			file	formData	file	true	"Receipt image"
// @Router			/v1/receipts [post]
func (co Controller) ParseReceipt(c *gin.Context) {
	if !co.AI.Enabled() {
		e := errReceiptsDisabled.Error()
		c.JSON(http.StatusServiceUnavailable, ReceiptResponse{Error: &e})
		return
	}

	formFile, err := c.FormFile("file")
	if formFile == nil || err != nil {
		e := errNoFilePost.Error()
		c.JSON(http.StatusBadRequest, ReceiptResponse{Error: &e})
		return
	}

	f, err := formFile.Open()
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, ReceiptResponse{Error: &e})
		return
	}
	defer f.Close()

	image, err := io.ReadAll(f)
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusInternalServerError, ReceiptResponse{Error: &e})
		return
	}

	contentType := http.DetectContentType(image)
	if !strings.HasPrefix(contentType, "image/") {
		e := errFileNotAnImage.Error()
		c.JSON(http.StatusBadRequest, ReceiptResponse{Error: &e})
		return
	}

	name := uuid.NewString() + path.Ext(formFile.Filename)
	if err := os.MkdirAll(ReceiptDir, 0o755); err != nil {
		e := err.Error()
		c.JSON(http.StatusInternalServerError, ReceiptResponse{Error: &e})
		return
	}
	if err := os.WriteFile(filepath.Join(ReceiptDir, name), image, 0o644); err != nil {
		e := err.Error()
		c.JSON(http.StatusInternalServerError, ReceiptResponse{Error: &e})
		return
	}

	dataURL := fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(image))
	receipt, err := co.AI.ParseReceipt(c.Request.Context(), dataURL)
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusInternalServerError, ReceiptResponse{Error: &e})
		return
	}

	data := newReceiptDraft(receipt, "/"+path.Join("data", "receipts", name))
	c.JSON(http.StatusOK, ReceiptResponse{Data: &data})
}

// newReceiptDraft converts the parser output into a transaction draft,
// dropping fields the parser could not extract.
func newReceiptDraft(receipt ai.Receipt, receiptURL string) ReceiptDraft {
	draft := TransactionEditable{
		Type:        types.TypeExpense,
		Description: receipt.Merchant,
		ReceiptURL:  receiptURL,
	}

	if amount, err := decimal.NewFromString(receipt.Amount); err == nil && amount.IsPositive() {
		draft.Amount = amount
	}

	if date, err := time.Parse("2006-01-02", receipt.Date); err == nil {
		draft.Date = date
	} else {
		draft.Date = time.Now().In(time.UTC)
	}

	if types.CategoryValid(receipt.Category, types.TypeExpense) {
		draft.Category = receipt.Category
	}

	return ReceiptDraft{
		Draft:      draft,
		Merchant:   receipt.Merchant,
		ReceiptURL: receiptURL,
	}
}
