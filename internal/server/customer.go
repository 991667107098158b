package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	customerdomain "github.com/smallbiznis/notaventa/internal/customer/domain"
)

type createCustomerRequest struct {
	LegalName string `json:"legal_name"`
	TradeName string `json:"trade_name"`
	TaxID     string `json:"tax_id"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

type updateCustomerRequest struct {
	LegalName *string `json:"legal_name"`
	TradeName *string `json:"trade_name"`
	TaxID     *string `json:"tax_id"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
}

func (s *Server) CreateCustomer(c *gin.Context) {
	var req createCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.customerSvc.Create(c.Request.Context(), customerdomain.CreateCustomerRequest{
		LegalName: strings.TrimSpace(req.LegalName),
		TradeName: strings.TrimSpace(req.TradeName),
		TaxID:     strings.TrimSpace(req.TaxID),
		Email:     strings.TrimSpace(req.Email),
		Phone:     strings.TrimSpace(req.Phone),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.obsMetrics.RecordCatalogWrite(c.Request.Context(), "customer", "create")
	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) ListCustomers(c *gin.Context) {
	resp, err := s.customerSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetCustomerByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.customerSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateCustomer(c *gin.Context) {
	var req updateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.customerSvc.Update(c.Request.Context(), id, customerdomain.UpdateCustomerRequest{
		LegalName: req.LegalName,
		TradeName: req.TradeName,
		TaxID:     req.TaxID,
		Email:     req.Email,
		Phone:     req.Phone,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.obsMetrics.RecordCatalogWrite(c.Request.Context(), "customer", "update")
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteCustomer(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := s.customerSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	s.obsMetrics.RecordCatalogWrite(c.Request.Context(), "customer", "delete")
	c.JSON(http.StatusOK, gin.H{"message": "customer deleted"})
}

func (s *Server) ListCustomerAddresses(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if _, err := s.customerSvc.GetByID(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.addressSvc.ListByCustomer(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
