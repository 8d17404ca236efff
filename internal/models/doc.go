// package models defines the data model for the local playlist vault
package models
