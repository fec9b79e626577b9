package fitbit

import "golang.org/x/oauth2"

// SpO2 data requires the oxygen_saturation scope.
var oauthScopes = []string{"oxygen_saturation"}

// OAuthConfig returns the oauth2 configuration for the authorization code
// grant. Fitbit requires HTTP Basic client authentication at the token
// endpoint, hence AuthStyleInHeader.
func OAuthConfig(clientID, clientSecret, redirectURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Scopes:       oauthScopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:   AuthorizeURL,
			TokenURL:  defaultTokenURL,
			AuthStyle: oauth2.AuthStyleInHeader,
		},
	}
}
