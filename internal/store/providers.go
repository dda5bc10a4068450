package store

import "github.com/sandeepkv93/taskflow/internal/model"

// cannedIdentities stand in for the profile each provider would return.
var cannedIdentities = map[model.Provider]model.Identity{
	model.ProviderGoogle: {
		ID:       "google-123",
		Name:     "John Doe",
		Email:    "john.doe@gmail.com",
		Avatar:   "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=150&h=150&fit=crop&crop=face",
		Provider: model.ProviderGoogle,
	},
	model.ProviderGitHub: {
		ID:       "github-456",
		Name:     "Jane Smith",
		Email:    "jane.smith@github.com",
		Avatar:   "https://images.unsplash.com/photo-1494790108755-2616b612b786?w=150&h=150&fit=crop&crop=face",
		Provider: model.ProviderGitHub,
	},
	model.ProviderFacebook: {
		ID:       "facebook-789",
		Name:     "Mike Johnson",
		Email:    "mike.johnson@facebook.com",
		Avatar:   "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=150&h=150&fit=crop&crop=face",
		Provider: model.ProviderFacebook,
	},
	model.ProviderApple: {
		ID:       "apple-012",
		Name:     "Sarah Wilson",
		Email:    "sarah.wilson@icloud.com",
		Avatar:   "https://images.unsplash.com/photo-1438761681033-6461ffad8d80?w=150&h=150&fit=crop&crop=face",
		Provider: model.ProviderApple,
	},
}

func cannedIdentity(p model.Provider) (model.Identity, bool) {
	id, ok := cannedIdentities[p]
	return id, ok
}
