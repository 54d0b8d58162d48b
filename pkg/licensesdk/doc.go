// Package licensesdk is the Go client for the keyward license service.
//
// Unauthenticated machine operations (activation, verification) hang off
// SDKClient; operator management operations require an AdminSession obtained
// via SDKClient.Login.
//
//	client := licensesdk.NewSDKClient("https://licenses.example.com")
//	res, err := client.Verify(ctx)
//	if errors.Is(err, licensesdk.ErrNotActivated) {
//	    res, err = client.Activate(ctx, key)
//	}
package licensesdk
