package internal

// Version of the localtranslator application
const Version = "0.3.0"
