package dto

// ChannelProfile is the projection returned by the channel lookup: a
// subset of the user's profile plus viewer-relative subscription facts.
type ChannelProfile struct {
	ID                        string `json:"id"`
	FullName                  string `json:"fullName"`
	Username                  string `json:"username"`
	Email                     string `json:"email"`
	Avatar                    string `json:"avatar"`
	CoverImage                string `json:"coverImage,omitempty"`
	SubscribersCount          int64  `json:"subscribersCount"`
	ChannelsSubscribedToCount int64  `json:"channelsSubscribedToCount"`
	IsSubscribed              bool   `json:"isSubscribed"`
}
