package storefront

import (
	"sync"

	"github.com/KingGimer44/VideoJuego/models"
)

// CartItem is a game snapshot taken when it was first added, with a quantity of at least 1.
type CartItem struct {
	Game     models.Game `json:"game"`
	Quantity int         `json:"quantity"`
}

// Cart holds at most one item per game id, in insertion order.
// Listeners run after every mutation with a snapshot of the items.
type Cart struct {
	mu        sync.Mutex
	items     []CartItem
	listeners map[int]func([]CartItem)
	nextID    int
}

func NewCart() *Cart {
	return &Cart{listeners: make(map[int]func([]CartItem))}
}

// Subscribe registers fn and returns a function that removes it.
func (c *Cart) Subscribe(fn func([]CartItem)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

// AddToCart increments the quantity of an existing item or appends a new one.
// The stored snapshot is not refreshed.
func (c *Cart) AddToCart(game models.Game) {
	c.mutate(func() bool {
		if i := c.indexOf(game.ID); i >= 0 {
			c.items[i].Quantity++
			return true
		}
		game.Platform = append(models.Platforms(nil), game.Platform...)
		c.items = append(c.items, CartItem{Game: game, Quantity: 1})
		return true
	})
}

func (c *Cart) RemoveFromCart(gameID string) {
	c.mutate(func() bool {
		i := c.indexOf(gameID)
		if i < 0 {
			return false
		}
		c.items = append(c.items[:i], c.items[i+1:]...)
		return true
	})
}

// UpdateQuantity sets the quantity of an item; n <= 0 removes it.
func (c *Cart) UpdateQuantity(gameID string, n int) {
	if n <= 0 {
		c.RemoveFromCart(gameID)
		return
	}
	c.mutate(func() bool {
		i := c.indexOf(gameID)
		if i < 0 {
			return false
		}
		c.items[i].Quantity = n
		return true
	})
}

func (c *Cart) ClearCart() {
	c.mutate(func() bool {
		c.items = nil
		return true
	})
}

// takeAll empties the cart and returns what it held.
func (c *Cart) takeAll() []CartItem {
	var taken []CartItem
	c.mutate(func() bool {
		if len(c.items) == 0 {
			return false
		}
		taken = c.snapshot()
		c.items = nil
		return true
	})
	return taken
}

// Items returns a copy of the cart contents.
func (c *Cart) Items() []CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

func (c *Cart) TotalPrice() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var total float64
	for _, it := range c.items {
		total += it.Game.Price * float64(it.Quantity)
	}
	return total
}

func (c *Cart) TotalItems() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0
	for _, it := range c.items {
		total += it.Quantity
	}
	return total
}

func (c *Cart) IsEmpty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items) == 0
}

// mutate applies fn under the lock and notifies listeners when fn reports a change.
func (c *Cart) mutate(fn func() bool) {
	c.mu.Lock()
	if !fn() {
		c.mu.Unlock()
		return
	}
	snap := c.snapshot()
	listeners := make([]func([]CartItem), 0, len(c.listeners))
	for _, l := range c.listeners {
		listeners = append(listeners, l)
	}
	c.mu.Unlock()

	for _, l := range listeners {
		l(snap)
	}
}

func (c *Cart) indexOf(gameID string) int {
	for i, it := range c.items {
		if it.Game.ID == gameID {
			return i
		}
	}
	return -1
}

func (c *Cart) snapshot() []CartItem {
	out := make([]CartItem, len(c.items))
	for i, it := range c.items {
		it.Game.Platform = append(models.Platforms(nil), it.Game.Platform...)
		out[i] = it
	}
	return out
}
