package client

import (
	"testing"

	"github.com/dmitrijs2005/gamezone/internal/client/models"
	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductDTORoundTrip(t *testing.T) {
	dto := ProductDTO{ID: 4, Name: "Teclado", Price: 79990.5, Description: "Mecánico", Category: "Teclados y Ratones"}

	p, err := ProductFromDTO(dto)
	require.NoError(t, err)
	assert.Equal(t, dto, ProductToDTO(p))
}

func TestProductFromDTO_NegativePrice(t *testing.T) {
	_, err := ProductFromDTO(ProductDTO{ID: 1, Price: -0.01})
	assert.ErrorIs(t, err, ErrBadResponse)
}

func TestUserDTO_WireNames(t *testing.T) {
	img := "https://cdn/ana.png"
	b, err := json.Marshal(UserDTO{ID: 1, Name: "Ana", Email: "ana@gamezone.cl", Password: "secreto",
		Address: "Calle 1", AcceptedTerms: true, Interests: `["Consolas"]`, Image: &img})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"nombre":"Ana","correo":"ana@gamezone.cl","clave":"secreto","direccion":"Calle 1",
		"aceptaterminos":true,"gustos":"[\"Consolas\"]","imagen":"https://cdn/ana.png"}`, string(b))

	b, err = json.Marshal(UserDTO{ID: 1})
	require.NoError(t, err)
	assert.NotContains(t, string(b), "clave")
	assert.Contains(t, string(b), `"imagen":null`)
}

func TestUserFromDTO(t *testing.T) {
	img := "/sdcard/ana.jpg"
	u, err := UserFromDTO(UserDTO{ID: 9, Name: "Ana", Email: "ana@gamezone.cl", Password: "ignorada",
		Interests: "Consolas,Sillas Gamer", Image: &img}, "argon2id$s$k")
	require.NoError(t, err)

	want := models.User{ID: 9, Name: "Ana", Email: "ana@gamezone.cl", PasswordHash: "argon2id$s$k",
		Interests: []string{"Consolas", "Sillas Gamer"}, Image: &img}
	if diff := cmp.Diff(want, u); diff != "" {
		t.Errorf("UserFromDTO mismatch (-want +got):\n%s", diff)
	}

	_, err = UserFromDTO(UserDTO{Interests: "[oops"}, "")
	assert.Error(t, err)
}

func TestUserToDTO(t *testing.T) {
	u := models.User{ID: 3, Name: "Beto", Email: "beto@gamezone.cl", PasswordHash: "argon2id$s$k", Interests: []string{"Consolas"}}

	dto := UserToDTO(u, "")
	assert.Empty(t, dto.Password, "the hash never goes on the wire")
	assert.Equal(t, `["Consolas"]`, dto.Interests)

	back, err := UserFromDTO(dto, u.PasswordHash)
	require.NoError(t, err)
	assert.Equal(t, u, back)
}

func TestAPIError_Unwrap(t *testing.T) {
	assert.ErrorIs(t, &APIError{StatusCode: 401}, ErrUnauthorized)
	assert.ErrorIs(t, &APIError{StatusCode: 403}, ErrUnauthorized)
	assert.ErrorIs(t, &APIError{StatusCode: 404}, ErrNotFound)
	assert.ErrorIs(t, &APIError{StatusCode: 409}, ErrConflict)
	assert.NoError(t, (&APIError{StatusCode: 500}).Unwrap())
	assert.Equal(t, "api error: 500 Internal Server Error: boom", (&APIError{StatusCode: 500, Message: "boom"}).Error())
}
