// Package workflow drives the machine creation dialog.
//
// A Controller owns one dialog cycle at a time: it derives whether the
// trigger is usable, routes an opening through the SSH key gate and only
// then creates a machine.Form. A Submitter turns a valid form into a
// payload and hands it to the creation action without waiting for the
// result.
//
// Every cycle has a Token. Asynchronous completions carry the token they
// were started with and are dropped once Current reports false.
package workflow
