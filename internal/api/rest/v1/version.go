package v1

// BasePath is the base path of version 1 of the REST API
const BasePath = "/api/v1/metaqs"
