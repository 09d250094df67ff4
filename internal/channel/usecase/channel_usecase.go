package usecase

import (
	"net/http"
	"strings"

	authrepo "vidtube-backend/internal/auth/repository"
	channeldomain "vidtube-backend/internal/channel/domain"
	channeldto "vidtube-backend/internal/channel/dto"
	"vidtube-backend/internal/channel/repository"
	"vidtube-backend/pkg/response"
)

type ChannelUsecase interface {
	GetChannelProfile(username, viewerID string) (*channeldto.ChannelProfile, error)
	ToggleSubscription(viewerID, channelID string) (bool, error)
}

// channelUsecase implements ChannelUsecase interface
type channelUsecase struct {
	userRepo authrepo.UserRepository
	subRepo  repository.SubscriptionRepository
}

// NewChannelUsecase creates a new instance of channelUsecase
func NewChannelUsecase(userRepo authrepo.UserRepository, subRepo repository.SubscriptionRepository) ChannelUsecase {
	return &channelUsecase{
		userRepo: userRepo,
		subRepo:  subRepo,
	}
}

// GetChannelProfile aggregates the channel projection: subscriber count,
// subscribed-to count, and whether the viewer subscribes to this channel.
func (u *channelUsecase) GetChannelProfile(username, viewerID string) (*channeldto.ChannelProfile, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, response.NewError(http.StatusBadRequest, "username is missing")
	}

	channel, err := u.userRepo.FindByUsername(username)
	if err != nil {
		return nil, err
	}
	if channel == nil {
		return nil, response.NewError(http.StatusNotFound, "channel does not exist")
	}

	subscribers, err := u.subRepo.CountByChannel(channel.ID)
	if err != nil {
		return nil, err
	}

	subscribedTo, err := u.subRepo.CountBySubscriber(channel.ID)
	if err != nil {
		return nil, err
	}

	isSubscribed := false
	if viewerID != "" {
		isSubscribed, err = u.subRepo.Exists(viewerID, channel.ID)
		if err != nil {
			return nil, err
		}
	}

	return &channeldto.ChannelProfile{
		ID:                        channel.ID,
		FullName:                  channel.FullName,
		Username:                  channel.Username,
		Email:                     channel.Email,
		Avatar:                    channel.Avatar,
		CoverImage:                channel.CoverImage,
		SubscribersCount:          subscribers,
		ChannelsSubscribedToCount: subscribedTo,
		IsSubscribed:              isSubscribed,
	}, nil
}

// ToggleSubscription subscribes the viewer to the channel, or unsubscribes
// if already subscribed. Returns the resulting subscribed state.
func (u *channelUsecase) ToggleSubscription(viewerID, channelID string) (bool, error) {
	if viewerID == channelID {
		return false, response.NewError(http.StatusBadRequest, "cannot subscribe to your own channel")
	}

	channel, err := u.userRepo.FindByID(channelID)
	if err != nil {
		return false, err
	}
	if channel == nil {
		return false, response.NewError(http.StatusNotFound, "channel does not exist")
	}

	subscribed, err := u.subRepo.Exists(viewerID, channelID)
	if err != nil {
		return false, err
	}

	if subscribed {
		if err := u.subRepo.Delete(viewerID, channelID); err != nil {
			return false, err
		}
		return false, nil
	}

	if err := u.subRepo.Create(&channeldomain.Subscription{
		SubscriberID: viewerID,
		ChannelID:    channelID,
	}); err != nil {
		return false, err
	}
	return true, nil
}
