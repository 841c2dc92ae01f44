package client

import "context"

// UsersAPI is the remote /usuarios resource.
type UsersAPI interface {
	ListUsers(ctx context.Context) ([]UserDTO, error)
	GetUser(ctx context.Context, id int64) (UserDTO, error)
	GetUserByEmail(ctx context.Context, email string) (UserDTO, error)
	CreateUser(ctx context.Context, u UserDTO) (UserDTO, error)

	// Login returns the canonical user for valid credentials and an error
	// matching ErrUnauthorized otherwise.
	Login(ctx context.Context, email, password string) (UserDTO, error)

	UpdateUser(ctx context.Context, id int64, u UserDTO) (UserDTO, error)
	DeleteUser(ctx context.Context, id int64) error
}

// ProductsAPI is the remote /productos resource.
type ProductsAPI interface {
	ListProducts(ctx context.Context) ([]ProductDTO, error)
	GetProduct(ctx context.Context, id int64) (ProductDTO, error)
	ProductsByCategory(ctx context.Context, category string) ([]ProductDTO, error)
	SearchProducts(ctx context.Context, name string) ([]ProductDTO, error)
	CreateProduct(ctx context.Context, p ProductDTO) (ProductDTO, error)
	UpdateProduct(ctx context.Context, id int64, p ProductDTO) (ProductDTO, error)
	DeleteProduct(ctx context.Context, id int64) error
}
