// Package submit provides form.SubmitFunc implementations. HTTPSubmitter
// sends the flattened values to an endpoint and turns the response into the
// ErrorMap the controller publishes.
package submit
