package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	productdomain "github.com/smallbiznis/notaventa/internal/product/domain"
)

type createProductRequest struct {
	Name          string  `json:"name"`
	UnitOfMeasure string  `json:"unit_of_measure"`
	BasePrice     float64 `json:"base_price"`
}

type updateProductRequest struct {
	Name          *string  `json:"name"`
	UnitOfMeasure *string  `json:"unit_of_measure"`
	BasePrice     *float64 `json:"base_price"`
}

func (s *Server) CreateProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.productSvc.Create(c.Request.Context(), productdomain.CreateProductRequest{
		Name:          strings.TrimSpace(req.Name),
		UnitOfMeasure: strings.TrimSpace(req.UnitOfMeasure),
		BasePrice:     decimal.NewFromFloat(req.BasePrice),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.obsMetrics.RecordCatalogWrite(c.Request.Context(), "product", "create")
	c.JSON(http.StatusCreated, gin.H{"data": toProductResponse(resp)})
}

func (s *Server) ListProducts(c *gin.Context) {
	resp, err := s.productSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": toProductResponses(resp)})
}

func (s *Server) GetProductByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.productSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": toProductResponse(resp)})
}

func (s *Server) UpdateProduct(c *gin.Context) {
	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	var basePrice *decimal.Decimal
	if req.BasePrice != nil {
		value := decimal.NewFromFloat(*req.BasePrice)
		basePrice = &value
	}

	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.productSvc.Update(c.Request.Context(), id, productdomain.UpdateProductRequest{
		Name:          req.Name,
		UnitOfMeasure: req.UnitOfMeasure,
		BasePrice:     basePrice,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.obsMetrics.RecordCatalogWrite(c.Request.Context(), "product", "update")
	c.JSON(http.StatusOK, gin.H{"data": toProductResponse(resp)})
}

func (s *Server) DeleteProduct(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := s.productSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	s.obsMetrics.RecordCatalogWrite(c.Request.Context(), "product", "delete")
	c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
}
