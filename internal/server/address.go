package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	addressdomain "github.com/smallbiznis/notaventa/internal/address/domain"
)

type createAddressRequest struct {
	CustomerID   string `json:"customer_id"`
	Street       string `json:"street"`
	Neighborhood string `json:"neighborhood"`
	Municipality string `json:"municipality"`
	State        string `json:"state"`
	Kind         string `json:"kind"`
}

type updateAddressRequest struct {
	Street       *string `json:"street"`
	Neighborhood *string `json:"neighborhood"`
	Municipality *string `json:"municipality"`
	State        *string `json:"state"`
	Kind         *string `json:"kind"`
}

func (s *Server) CreateAddress(c *gin.Context) {
	var req createAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.addressSvc.Create(c.Request.Context(), addressdomain.CreateAddressRequest{
		CustomerID:   strings.TrimSpace(req.CustomerID),
		Street:       strings.TrimSpace(req.Street),
		Neighborhood: strings.TrimSpace(req.Neighborhood),
		Municipality: strings.TrimSpace(req.Municipality),
		State:        strings.TrimSpace(req.State),
		Kind:         addressdomain.Kind(strings.ToUpper(strings.TrimSpace(req.Kind))),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.obsMetrics.RecordCatalogWrite(c.Request.Context(), "address", "create")
	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) GetAddressByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.addressSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateAddress(c *gin.Context) {
	var req updateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	var kind *addressdomain.Kind
	if req.Kind != nil {
		value := addressdomain.Kind(strings.ToUpper(strings.TrimSpace(*req.Kind)))
		kind = &value
	}

	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.addressSvc.Update(c.Request.Context(), id, addressdomain.UpdateAddressRequest{
		Street:       req.Street,
		Neighborhood: req.Neighborhood,
		Municipality: req.Municipality,
		State:        req.State,
		Kind:         kind,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.obsMetrics.RecordCatalogWrite(c.Request.Context(), "address", "update")
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteAddress(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := s.addressSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	s.obsMetrics.RecordCatalogWrite(c.Request.Context(), "address", "delete")
	c.JSON(http.StatusOK, gin.H{"message": "address deleted"})
}
