// Command bookbind is the CLI front end: it binds a directory of audio
// files into a chaptered M4B audiobook and exposes inspection utilities
// for the chapter timeline, identity parsing, configuration, and the
// probe cache.
package main
