package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	salesnotedomain "github.com/smallbiznis/notaventa/internal/salesnote/domain"
)

type createNoteLineRequest struct {
	ProductID string  `json:"product_id"`
	Quantity  int64   `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

type createNoteRequest struct {
	CustomerID        string                  `json:"customer_id"`
	BillingAddressID  string                  `json:"billing_address_id"`
	ShippingAddressID string                  `json:"shipping_address_id"`
	Lines             []createNoteLineRequest `json:"lines"`
}

func (s *Server) CreateNote(c *gin.Context) {
	var req createNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	lines := make([]salesnotedomain.CreateNoteLineRequest, 0, len(req.Lines))
	for _, line := range req.Lines {
		lines = append(lines, salesnotedomain.CreateNoteLineRequest{
			ProductID: strings.TrimSpace(line.ProductID),
			Quantity:  line.Quantity,
			UnitPrice: decimal.NewFromFloat(line.UnitPrice),
		})
	}

	resp, err := s.noteSvc.Create(c.Request.Context(), salesnotedomain.CreateNoteRequest{
		CustomerID:        strings.TrimSpace(req.CustomerID),
		BillingAddressID:  strings.TrimSpace(req.BillingAddressID),
		ShippingAddressID: strings.TrimSpace(req.ShippingAddressID),
		Lines:             lines,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": toEnrichedNoteResponse(resp)})
}

func (s *Server) ListNotes(c *gin.Context) {
	resp, err := s.noteSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": toNoteResponses(resp)})
}

func (s *Server) GetNoteByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.noteSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": toEnrichedNoteResponse(resp)})
}

func (s *Server) DownloadNotePDF(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.noteSvc.DownloadPDF(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", resp.Folio+".pdf"))
	c.Data(http.StatusOK, "application/pdf", resp.Content)
}

func (s *Server) ResendNote(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := s.noteSvc.Resend(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "notification resent"})
}
