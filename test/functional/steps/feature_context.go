package steps

import (
	"context"
	"net/http"
	"time"
	"vehicle-bridge/test/functional/driver"

	"github.com/cucumber/godog"
	"github.com/stretchr/testify/require"
)

const (
	pollInterval   = 100 * time.Millisecond
	defaultTimeout = 5 * time.Second
)

type FeatureContext struct {
	bridge       *driver.Bridge
	apiDriver    *driver.APIDriver
	response     *http.Response
	responseData map[string]any
	require      *require.Assertions
	t            godog.TestingT
}

func NewFeatureContext(bridge *driver.Bridge) *FeatureContext {
	return &FeatureContext{
		bridge:    bridge,
		apiDriver: driver.NewAPIDriver(bridge.URL()),
	}
}

func (fc *FeatureContext) RegisterSteps(ctx *godog.ScenarioContext) {
	// Generic steps
	ctx.Step(`^wait for (.*)$`, fc.waitForDuration)
	ctx.Then(`^the response status code should be (\d+)$`, fc.theResponseStatusCodeShouldBe)

	// Vehicle steps
	ctx.Given(`^the bridge is connected to the simulated vehicle$`, fc.theBridgeIsConnectedToTheSimulatedVehicle)
	ctx.When(`^I get the vehicle$`, fc.iGetTheVehicle)
	ctx.When(`^I disable the vehicle$`, fc.iDisableTheVehicle)
	ctx.When(`^the simulated vehicle drops the connection$`, fc.theSimulatedVehicleDropsTheConnection)
	ctx.Then(`^the vehicle connection should be "([^"]*)"$`, fc.theVehicleConnectionShouldBe)
	ctx.Then(`^the vehicle state should be "([^"]*)"$`, fc.theVehicleStateShouldBe)
	ctx.Then(`^the vehicle connection should eventually be "([^"]*)"$`, fc.theVehicleConnectionShouldEventuallyBe)
	ctx.Then(`^the vehicle state should eventually be "([^"]*)"$`, fc.theVehicleStateShouldEventuallyBe)
	ctx.Then(`^the vehicle load state should eventually be "([^"]*)"$`, fc.theVehicleLoadStateShouldEventuallyBe)
	ctx.Then(`^the vehicle should reach position "([^"]*)" within (.*)$`, fc.theVehicleShouldReachPositionWithin)

	// Command steps
	ctx.When(`^I send a command to "([^"]*)" with operation "([^"]*)"$`, fc.iSendACommandToWithOperation)
	ctx.Then(`^the response should contain a command id$`, fc.theResponseShouldContainACommandID)
	ctx.Then(`^there should be no pending commands$`, fc.thereShouldBeNoPendingCommands)
	ctx.When(`^I ask whether the vehicle can execute "([^"]*)"$`, fc.iAskWhetherTheVehicleCanExecute)
	ctx.Then(`^the capability answer should be accepted$`, fc.theCapabilityAnswerShouldBeAccepted)
	ctx.Then(`^the capability answer should be rejected$`, fc.theCapabilityAnswerShouldBeRejected)

	// Journal steps
	ctx.When(`^the dispatcher publishes command "([^"]*)" to "([^"]*)" with operation "([^"]*)"$`, fc.theDispatcherPublishesCommand)
	ctx.Then(`^the journal should eventually show command "([^"]*)" as "([^"]*)"$`, fc.theJournalShouldEventuallyShowCommandAs)
	ctx.Then(`^the command history should list "([^"]*)"$`, fc.theCommandHistoryShouldList)
	ctx.When(`^I get the command "([^"]*)"$`, fc.iGetTheCommand)

	// State cache steps
	ctx.When(`^I get the cached vehicle state$`, fc.iGetTheCachedVehicleState)
	ctx.Then(`^the cached state should be "([^"]*)"$`, fc.theCachedStateShouldBe)

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		fc.t = godog.T(ctx)
		fc.require = require.New(fc.t)
		fc.response = nil
		fc.responseData = nil
		return ctx, nil
	})
}
