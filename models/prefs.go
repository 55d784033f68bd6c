package models

// UserPrefs, kullanıcının okuma takibi tercihleri.
//
// CommentReset true ise kullanıcının takip kayıtları "comment" türünde
// tutulur: yeni bir yorum yayınlandığında yazı tekrar okunmamış sayılır.
// False ise kayıtlar "post" türündedir ve yalnızca yazının kendisi
// görüntülenene kadar okunmamış kalır.
type UserPrefs struct {
	UserID       string `json:"user_id"`
	ShowArtifact bool   `json:"show_artifact"`
	CommentReset bool   `json:"comment_reset"`
}

// PreferredKind, tercihe karşılık gelen takip türünü döner.
func (p UserPrefs) PreferredKind() TrackKind {
	if p.CommentReset {
		return TrackKindComment
	}
	return TrackKindPost
}

// UpdatePrefsRequest, tercih güncelleme isteği. Pointer alanlar
// "gönderilmedi" ile "false gönderildi" ayrımını korur.
type UpdatePrefsRequest struct {
	ShowArtifact *bool `json:"show_artifact"`
	CommentReset *bool `json:"comment_reset"`
}
