package cli

import (
	"fmt"

	"dontverifyme/pkg/dvm"
)

// RequireAuth verifies that a stored session exists and is still valid
// with the controller, returning the session token when it is.
func RequireAuth(controllerUrl string, methodId string) (string, error) {
	sessionToken, _, err := dvm.GetSessionToken()
	if err != nil {
		fmt.Println("⚠️ You must be logged-in to run this command")
		return "", fmt.Errorf("not authenticated")
	}

	client, err := dvm.NewClient(dvm.NewClientOpts{
		ControllerUrl: controllerUrl,
		BearerAuth: &dvm.NewClientBearerAuthOpts{
			Token: sessionToken,
		},
		Id: methodId,
	})
	if err != nil {
		return "", fmt.Errorf("unexpected error: %w", err)
	}

	output, err := client.ValidateSessionV1()
	if err != nil || output.Data.IsExpired {
		if err := dvm.DeleteSessionToken(); err != nil {
			fmt.Printf("⚠️ We failed to remove the session token for you, please do it yourself\n")
		}
		fmt.Println("⚠️ Please login again using `dontverifyme login`")
		return "", fmt.Errorf("re-authentication needed")
	}

	return sessionToken, nil
}
