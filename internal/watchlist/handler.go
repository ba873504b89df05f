package watchlist

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

//
// --------------------------------------------------
// POST /watchlist
// --------------------------------------------------
//

func (h *Handler) AddProduct() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			ProductID string `json:"product_id"`
		}

		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		created, err := h.service.Watch(c.Request.Context(), req.ProductID)
		if err != nil {
			if errors.Is(err, ErrEmptyProductID) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "product_id is required"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		if !created {
			c.JSON(http.StatusOK, gin.H{
				"message":    "product is already on the watchlist",
				"product_id": req.ProductID,
			})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message":    "product added to the watchlist",
			"product_id": req.ProductID,
		})
	}
}

//
// --------------------------------------------------
// GET /watchlist
// --------------------------------------------------
//

func (h *Handler) ListProducts() gin.HandlerFunc {
	return func(c *gin.Context) {
		entries, err := h.service.Entries(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"count":    len(entries),
			"products": entries,
		})
	}
}
