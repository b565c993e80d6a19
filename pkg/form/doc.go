// Package form implements the form-state controller.
//
// A Controller owns the field values, the published ErrorMap and the
// loading/posted flags of one form instance. Presentation layers read its
// Snapshot, forward edits through Change (or a ChangeHandler) and call
// Submit, which validates every field, refuses to submit while any field is
// invalid, and otherwise hands the flattened values to the injected
// SubmitFunc and publishes whatever errors it reports.
//
//	ctrl, err := form.New(fields, submitter.Func(),
//		form.WithLabelClass("label"),
//		form.WithLogger(logger),
//	)
//	if err := ctrl.Change("email", model.Text("ada@example.com")); err != nil {
//		return err
//	}
//	result, err := ctrl.Submit(ctx)
//	var invalid *form.ValidationError
//	if errors.As(err, &invalid) {
//		// render invalid.Errors
//	}
//
// Only one submission may be in flight: a second Submit issued before the
// first resolves fails with ErrSubmitInFlight instead of racing on state.
package form
