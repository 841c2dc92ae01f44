package client

import (
	"fmt"

	"github.com/dmitrijs2005/gamezone/internal/client/models"
)

// UserDTO is the wire form of a user.
type UserDTO struct {
	ID      int64  `json:"id"`
	Name    string `json:"nombre"`
	Email   string `json:"correo"`
	Address string `json:"direccion"`

	// Password travels in clear to the API; it is empty (and omitted) on
	// profile updates that keep the current password.
	Password string `json:"clave,omitempty"`

	AcceptedTerms bool `json:"aceptaterminos"`

	// Interests is a string holding a JSON array of tags.
	Interests string  `json:"gustos"`
	Image     *string `json:"imagen"`
}

// ProductDTO is the wire form of a product.
type ProductDTO struct {
	ID          int64   `json:"id"`
	Name        string  `json:"nombre"`
	Price       float64 `json:"precio"`
	Description string  `json:"descripcion"`
	Category    string  `json:"categoria"`
}

// UserFromDTO converts a canonical API user into the local entity. The API
// never returns a usable password, so the caller supplies the hash to keep.
func UserFromDTO(dto UserDTO, passwordHash string) (models.User, error) {
	tags, err := models.DecodeInterests(dto.Interests)
	if err != nil {
		return models.User{}, err
	}
	u := models.User{
		ID:            dto.ID,
		Name:          dto.Name,
		Email:         dto.Email,
		PasswordHash:  passwordHash,
		Address:       dto.Address,
		AcceptedTerms: dto.AcceptedTerms,
		Interests:     tags,
		Image:         dto.Image,
	}
	return u.Clone(), nil
}

// UserToDTO builds the request body for u. password may be empty.
func UserToDTO(u models.User, password string) UserDTO {
	c := u.Clone()
	return UserDTO{
		ID:            c.ID,
		Name:          c.Name,
		Email:         c.Email,
		Address:       c.Address,
		Password:      password,
		AcceptedTerms: c.AcceptedTerms,
		Interests:     models.EncodeInterests(c.Interests),
		Image:         c.Image,
	}
}

// ProductFromDTO validates and converts a wire product.
func ProductFromDTO(dto ProductDTO) (models.Product, error) {
	if dto.Price < 0 {
		return models.Product{}, fmt.Errorf("product %d has negative price %v: %w", dto.ID, dto.Price, ErrBadResponse)
	}
	return models.Product{
		ID:          dto.ID,
		Name:        dto.Name,
		Price:       dto.Price,
		Description: dto.Description,
		Category:    dto.Category,
	}, nil
}

func ProductToDTO(p models.Product) ProductDTO {
	return ProductDTO{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Description: p.Description,
		Category:    p.Category,
	}
}
