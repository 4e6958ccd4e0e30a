// Package mocks provides shared test doubles for the application's service,
// store, token and mail interfaces.
//
// Two styles are used. Store mocks embed testify's mock.Mock so tests can set
// call expectations. Service and transport mocks expose function fields with
// default return values for quick setup in handler tests:
//
//	svc := &mocks.MockSessionService{
//	    LoginFn: func(ctx context.Context, email, password string) (*service.Session, error) {
//	        return nil, service.ErrInvalidCredentials
//	    },
//	}
package mocks
