package session

// Login derives a credential from token and stores it, replacing any previous session.
func Login(store Store, token, userID string) (Credential, error) {
	cred, err := FromToken(token, userID)
	if err != nil {
		return Credential{}, err
	}
	if err := store.Set(cred); err != nil {
		return Credential{}, err
	}
	return cred, nil
}

// Logout clears all session state.
func Logout(store Store) error {
	return store.Clear()
}
