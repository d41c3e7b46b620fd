// Command vesper renders scheduled devotional videos from work orders kept
// on a shared Drive folder tree. One invocation is one batch: classify the
// orders, render whatever is due, publish the outputs, and exit.
package main
