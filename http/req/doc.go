/*
Package req provides ergonomics for handling an HTTP request.

Package req provides a helper for parsing form payloads in an HTTP request
into a pointer to a struct.
That struct ought to leverage the appropriate struct tags for performing two tasks.
First, matching keys in the payload to fields on the struct ("schema").
Second, for validating the payload's data meets requirements ("validate").

A field that must be present, but may be empty, is a pointer tagged "required":

	type entryForm struct {
		Title *string `schema:"title" validate:"required"`
	}

The parade of errors that may propagate from such a task
are translated to weblog sentinel errors in order to provide a consistent interface
for calling code.
*/
package req
