// Package services defines the shared error taxonomy for the render pipeline.
//
// Sentinel markers classify failures the way the job runner needs them:
// configuration errors abort the whole run, asset availability errors skip a
// job, pipeline stage errors fail a job, and persistence errors are logged
// without invalidating work already rendered. Wrap tags an error with one of
// the markers plus stage/operation context so the terminal reason string
// reads well in the run summary.
package services
