package store

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/redjex/Framer-Bot/internal/gesture"
)

// Animation is a custom clip binding stored for one user and gesture.
type Animation struct {
	ID        string
	UserID    int64
	Gesture   gesture.Label
	Path      string
	UpdatedAt time.Time
}

// AnimationRepository provides per-user animation bindings.
type AnimationRepository struct {
	db       *sql.DB
	defaults map[gesture.Label]string
}

// Animations returns the animation repository. defaults supplies the
// stock clip path per gesture, used whenever a user has no custom one.
func (s *Store) Animations(defaults map[gesture.Label]string) *AnimationRepository {
	return &AnimationRepository{db: s.db, defaults: defaults}
}

// SetClip binds a custom clip path to (userID, label), replacing any
// previous binding.
func (r *AnimationRepository) SetClip(userID int64, label gesture.Label, path string) error {
	_, err := r.db.Exec(
		`INSERT INTO user_animations (id, user_id, gesture, path, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(user_id, gesture) DO UPDATE SET path = excluded.path, updated_at = excluded.updated_at`,
		uuid.New().String(), userID, string(label), path, time.Now(),
	)
	return err
}

// ClearClip removes a custom binding; the user falls back to the default.
func (r *AnimationRepository) ClearClip(userID int64, label gesture.Label) error {
	_, err := r.db.Exec(
		`DELETE FROM user_animations WHERE user_id = ? AND gesture = ?`,
		userID, string(label),
	)
	return err
}

// ClipPath returns the custom path for (userID, label) or ErrNotFound.
func (r *AnimationRepository) ClipPath(userID int64, label gesture.Label) (string, error) {
	var path string
	err := r.db.QueryRow(
		`SELECT path FROM user_animations WHERE user_id = ? AND gesture = ?`,
		userID, string(label),
	).Scan(&path)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return path, nil
}

// PathsFor returns the clip path per gesture for a user: the custom
// binding where one exists, the default otherwise. userID 0 means
// "no user", returning defaults only.
func (r *AnimationRepository) PathsFor(userID int64) (map[gesture.Label]string, error) {
	paths := make(map[gesture.Label]string, len(r.defaults))
	for label, path := range r.defaults {
		paths[label] = path
	}
	if userID == 0 {
		return paths, nil
	}

	rows, err := r.db.Query(
		`SELECT gesture, path FROM user_animations WHERE user_id = ?`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var label, path string
		if err := rows.Scan(&label, &path); err != nil {
			return nil, err
		}
		paths[gesture.Label(label)] = path
	}
	return paths, rows.Err()
}

// SetEmojiID records which custom emoji the clip for (userID, label) was
// resolved from.
func (r *AnimationRepository) SetEmojiID(userID int64, label gesture.Label, emojiID string) error {
	_, err := r.db.Exec(
		`INSERT INTO user_emoji (user_id, gesture, emoji_id) VALUES (?, ?, ?)
		 ON CONFLICT(user_id, gesture) DO UPDATE SET emoji_id = excluded.emoji_id`,
		userID, string(label), emojiID,
	)
	return err
}

// EmojiID returns the recorded emoji identifier or ErrNotFound.
func (r *AnimationRepository) EmojiID(userID int64, label gesture.Label) (string, error) {
	var id string
	err := r.db.QueryRow(
		`SELECT emoji_id FROM user_emoji WHERE user_id = ? AND gesture = ?`,
		userID, string(label),
	).Scan(&id)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return id, nil
}

// ClearEmojiID removes the recorded emoji identifier.
func (r *AnimationRepository) ClearEmojiID(userID int64, label gesture.Label) error {
	_, err := r.db.Exec(
		`DELETE FROM user_emoji WHERE user_id = ? AND gesture = ?`,
		userID, string(label),
	)
	return err
}
