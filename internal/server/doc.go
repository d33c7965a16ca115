package server

// Package server exposes the conversion service over HTTP: probe, job
// creation, status polling, and file/archive downloads. It performs input
// validation and error mapping only; all job lifecycle logic lives in the
// convert package.
