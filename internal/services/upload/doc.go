// Package upload accepts profile photos.
//
// A photo is checked for type (JPEG or PNG) and size (at most 2 MiB) before
// anything is written; rejected photos never reach the PhotoStore. Accepted
// photos are stored under "<unix-millis>-<sanitised name>".
package upload
