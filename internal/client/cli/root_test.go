package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/gamezone/internal/apitest"
	"github.com/dmitrijs2005/gamezone/internal/client/client"
	"github.com/dmitrijs2005/gamezone/internal/client/config"
	"github.com/dmitrijs2005/gamezone/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer is written by background printers and read by the test.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func quietLogger(t *testing.T) {
	t.Helper()
	orig := newLogger
	newLogger = func(*config.Config) (logging.Logger, func() error, error) {
		return logging.Nop(), func() error { return nil }, nil
	}
	t.Cleanup(func() { newLogger = orig })
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := getPassword
	getPassword = func(io.Writer) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { getPassword = orig })
}

func testConfig(api *apitest.Server) *config.Config {
	return &config.Config{
		APIBaseURL:     api.URL(),
		DatabasePath:   ":memory:",
		RequestTimeout: 2 * time.Second,
		LogLevel:       "error",
	}
}

func seedCatalogue(api *apitest.Server) {
	api.SeedProducts(
		client.ProductDTO{ID: 1, Name: "PlayStation 5", Price: 549990, Category: "Consolas"},
		client.ProductDTO{ID: 2, Name: "Xbox Series X", Price: 499990, Category: "Consolas"},
		client.ProductDTO{ID: 3, Name: "Catan", Price: 29990, Description: "Juego de mesa", Category: "Juegos de Mesa"},
	)
}

func run(t *testing.T, cfg *config.Config, input string, args ...string) (string, error) {
	t.Helper()
	out := &syncBuffer{}
	cmd := NewRootCmd(cfg, strings.NewReader(input), out)
	cmd.SetArgs(args)
	cmd.SetErr(io.Discard)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "$549.990", formatPrice(549990))
	assert.Equal(t, "$990", formatPrice(990))
	assert.Equal(t, "$1.000.000", formatPrice(1e6))
	assert.Equal(t, "$0", formatPrice(0))
}

func TestProductsCommand(t *testing.T) {
	quietLogger(t)
	api := apitest.New(t)
	seedCatalogue(api)

	out, err := run(t, testConfig(api), "", "-a", "http://ignored", "products")
	require.NoError(t, err)
	assert.Contains(t, out, "PlayStation 5")
	assert.Contains(t, out, "$29.990")

	out, err = run(t, testConfig(api), "", "products", "--category", "Juegos de Mesa")
	require.NoError(t, err)
	assert.Contains(t, out, "Catan")
	assert.NotContains(t, out, "Xbox")

	out, err = run(t, testConfig(api), "", "products", "--search", "series")
	require.NoError(t, err)
	assert.Contains(t, out, "Xbox Series X")
	assert.NotContains(t, out, "Catan")
}

func TestProductsCommand_OfflineBannerAndCache(t *testing.T) {
	quietLogger(t)
	api := apitest.New(t)
	api.Close()

	out, err := run(t, testConfig(api), "", "products")
	require.NoError(t, err)
	assert.Contains(t, out, "Sin conexión y sin productos en caché")

	out, err = run(t, testConfig(api), "", "products", "--offline")
	require.NoError(t, err)
	assert.Contains(t, out, "No hay productos.")
}

func TestProductCommand(t *testing.T) {
	quietLogger(t)
	api := apitest.New(t)
	seedCatalogue(api)

	out, err := run(t, testConfig(api), "", "product", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "#3 Catan")
	assert.Contains(t, out, "Juego de mesa")

	out, err = run(t, testConfig(api), "", "product", "99")
	assert.Error(t, err)
	assert.Contains(t, out, "Error al cargar producto")

	_, err = run(t, testConfig(api), "", "product", "abc")
	assert.ErrorIs(t, err, errBadID)
}

func TestShell_RegisterAndBrowse(t *testing.T) {
	quietLogger(t)
	capturePrintln(t)
	stubPassword(t, "secreto")
	api := apitest.New(t)
	seedCatalogue(api)

	input := strings.Join([]string{
		"register",
		"Ana",
		"ana@gamezone.cl",
		"Calle 1",
		"Consolas, Mouse",
		"",
		"s",
		"category Consolas",
		"show 1",
		"active on",
		"active",
		"active reset",
		"exit",
	}, "\n") + "\n"

	out, err := run(t, testConfig(api), input)
	require.NoError(t, err)
	assert.Contains(t, out, "¡Registro exitoso!")
	assert.Contains(t, out, "Xbox Series X")
	assert.Contains(t, out, "#1 PlayStation 5")
	assert.Contains(t, out, "Estado: activo")
	assert.Contains(t, out[strings.LastIndex(out, "Estado: activo"):], "Estado: inactivo", "reset restores the default")
	assert.Equal(t, 1, api.CallCount("POST", "/usuarios"))
}

func TestShell_RegisterShowsFieldErrors(t *testing.T) {
	quietLogger(t)
	capturePrintln(t)
	stubPassword(t, "123")
	api := apitest.New(t)

	input := strings.Join([]string{"register", "", "sin-arroba", "", "", "", "s", "exit"}, "\n") + "\n"
	out, err := run(t, testConfig(api), input, "shell")
	require.NoError(t, err)
	assert.Contains(t, out, "Nombre: Campo obligatorio")
	assert.Contains(t, out, "Correo: Correo inválido")
	assert.Contains(t, out, "Clave: La clave debe tener al menos 6 caracteres")
	assert.Contains(t, out, "Gustos: Seleccione al menos un gusto")
	assert.Zero(t, api.CallCount("POST", "/usuarios"))
}

func TestShell_LoginEditDelete(t *testing.T) {
	quietLogger(t)
	capturePrintln(t)
	stubPassword(t, "secreto")
	api := apitest.New(t)
	id := api.SeedUser(client.UserDTO{
		Name: "Ana", Email: "ana@gamezone.cl", Password: "secreto",
		Address: "Calle 1", AcceptedTerms: true, Interests: `["Consolas"]`,
	})

	input := strings.Join([]string{
		"login",
		"ana@gamezone.cl",
		"edit",
		"",
		"Calle 2",
		"n",
		"",
		"profile",
		"delete-account",
		"s",
		"profile",
		"exit",
	}, "\n") + "\n"

	out, err := run(t, testConfig(api), input)
	require.NoError(t, err)
	assert.Contains(t, out, "Bienvenido, Ana")
	assert.Contains(t, out, "Perfil actualizado.")
	assert.Contains(t, out, "Dirección: Calle 2")
	assert.Contains(t, out, "Cuenta eliminada.")
	assert.Contains(t, out, "Debe iniciar sesión.")

	_, found := api.User(id)
	assert.False(t, found)
}

func TestShell_BadLogin(t *testing.T) {
	quietLogger(t)
	capturePrintln(t)
	stubPassword(t, "incorrecta")
	api := apitest.New(t)
	api.SeedUser(client.UserDTO{Name: "Ana", Email: "ana@gamezone.cl", Password: "secreto", Interests: "[]"})

	out, err := run(t, testConfig(api), "login\nana@gamezone.cl\nexit\n")
	require.NoError(t, err)
	assert.Contains(t, out, "Correo: Correo o contraseña incorrectos")
}

func TestNewLogger_Formats(t *testing.T) {
	for _, format := range []string{"", "json", "text"} {
		l, syncLog, err := newLogger(&config.Config{LogLevel: "error", LogFormat: format})
		require.NoError(t, err, format)
		assert.NotNil(t, l)
		assert.NotNil(t, syncLog)
	}

	_, _, err := newLogger(&config.Config{LogLevel: "error", LogFormat: "xml"})
	assert.Error(t, err)
	_, _, err = newLogger(&config.Config{LogLevel: "loud", LogFormat: "text"})
	assert.Error(t, err)
}
