package world

// CreateUser stores a credential pair under the world lock. Fails with
// ErrUserExists if the username is taken.
func (g *GridManager) CreateUser(username, password string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, err := g.store.CreateUser(username, password)
	return err
}

// GetUser returns a copy of the stored credentials for username.
func (g *GridManager) GetUser(username string) (User, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	u := g.store.GetUser(username)
	if u == nil {
		return User{}, false
	}
	return *u, true
}
