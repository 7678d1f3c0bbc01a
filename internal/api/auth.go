package api

import "context"

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, input LoginInput) (*LoginResponse, error) {
	if err := Validate(input); err != nil {
		return nil, err
	}
	data, err := c.post(ctx, "/api/auth/login", input)
	if err != nil {
		return nil, err
	}
	return decode[LoginResponse](data)
}
