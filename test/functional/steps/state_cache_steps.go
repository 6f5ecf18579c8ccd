package steps

func (fc *FeatureContext) iGetTheCachedVehicleState() error {
	resp, err := fc.apiDriver.GetCachedState()
	fc.require.NoError(err)
	fc.response = resp
	return nil
}

// theCachedStateShouldBe reads the snapshot as stored by the state cache.
func (fc *FeatureContext) theCachedStateShouldBe(state string) error {
	var data map[string]any
	fc.require.NoError(fc.decodeBody(fc.response.Body, &data))
	fc.require.Equal(state, data["state"])
	return nil
}
