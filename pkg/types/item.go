package types

// MinQuantity is the lowest quantity a cart item can hold.
// Decrement stops here; items are never removed by decrementing.
const MinQuantity = 1

// CartItem is one line of the cart. The JSON tags define the persisted
// record format; changing them breaks carts already on disk.
type CartItem struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	ImageURL string  `json:"image_url"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// NewItem is a cart item as supplied by a caller adding it to the cart.
// The quantity is owned by the cart and starts at MinQuantity.
type NewItem struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	ImageURL string  `json:"image_url"`
	Price    float64 `json:"price"`
}

// Line returns the CartItem for n with the starting quantity.
func (n NewItem) Line() CartItem {
	return CartItem{
		ID:       n.ID,
		Title:    n.Title,
		ImageURL: n.ImageURL,
		Price:    n.Price,
		Quantity: MinQuantity,
	}
}

// Validate checks the fields the cart relies on. Only the ID matters to the
// cart; titles and prices are not checked against any catalog.
func (n NewItem) Validate() error {
	if n.ID == "" {
		return ErrInvalidID
	}
	return nil
}
