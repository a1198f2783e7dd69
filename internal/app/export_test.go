package service

// Expire runs the countdown expiry path with the given generation token.
func (s *Service) Expire(generation string) { s.expire(generation) }

// SessionGeneration exposes the current session generation token.
func (s *Service) SessionGeneration() string { return s.session.Generation() }
