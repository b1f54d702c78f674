// Package dto contains request payload shapes for the REST API.
package dto
