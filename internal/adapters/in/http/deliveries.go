package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/delivery"

	"github.com/labstack/echo/v4"
)

const proofFormField = "image"

type ProofResponse struct {
	TrackingNumber string `json:"tracking_number"`
	ProofImage     string `json:"proof_image"`
}

func (s *Server) ClaimDelivery(c echo.Context) error {
	shipperID, err := identity(c, HeaderShipperID)
	if err != nil {
		return err
	}
	cmd, err := commands.NewClaimDeliveryCommand(shipperID, c.Param("tracking"), s.now())
	if err != nil {
		return err
	}
	if err = s.h.ClaimDelivery.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ConfirmDelivery accepts the proof photo as the multipart field "image".
func (s *Server) ConfirmDelivery(c echo.Context) error {
	shipperID, err := identity(c, HeaderShipperID)
	if err != nil {
		return err
	}
	image, err := readProof(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewConfirmDeliveryCommand(shipperID, c.Param("tracking"), image, s.now())
	if err != nil {
		return err
	}
	ref, err := s.h.ConfirmDelivery.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ProofResponse{TrackingNumber: cmd.TrackingNumber(), ProofImage: ref})
}

func readProof(c echo.Context) ([]byte, error) {
	header, err := c.FormFile(proofFormField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, fmt.Errorf("%w: no %q file in the form", delivery.ErrInvalidProofImage, proofFormField)
		}
		return nil, fmt.Errorf("%w: %v", delivery.ErrInvalidProofImage, err)
	}
	if header.Size > delivery.MaxProofImageBytes {
		return nil, fmt.Errorf("%w: %d bytes exceeds %d", delivery.ErrInvalidProofImage, header.Size, delivery.MaxProofImageBytes)
	}

	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// One extra byte lets the decoder see an oversized body.
	return io.ReadAll(io.LimitReader(f, delivery.MaxProofImageBytes+1))
}
